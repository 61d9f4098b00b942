package config

import (
	"errors"
	"fmt"
)

// Structural parse errors. The parser reports each one wrapped in a
// ParseError carrying the originating line number; there is no partial
// success, the first error aborts the parse.
var (
	ErrSectionTooDeep    = errors.New("section depth too deep")
	ErrDuplicateSection  = errors.New("duplicate section name at this level")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrMissingAssignment = errors.New("missing '=' assignment")
	ErrMalformedHeader   = errors.New("malformed section header")
)

// Lookup errors.
var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrSectionNotFound = errors.New("section not found")
)

// Cast errors, raised lazily when a value is requested in a given type.
// Independent of any parse error.
var (
	ErrNotANumber     = errors.New("not a number")
	ErrMalformedArray = errors.New("malformed array")
)

// ParseError wraps a structural error with the line it occurred on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
