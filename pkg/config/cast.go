package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Typed value casting. Stored values are always strings; these helpers
// convert them on demand. Scalars tolerate surrounding (and interior)
// whitespace. Arrays are brace-delimited comma-separated literals like
// "{1, 2, 3}".

// stripSpace removes every whitespace character from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// AsInt casts a raw value to int.
func AsInt(s string) (int, error) {
	n, err := strconv.Atoi(stripSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrNotANumber, s)
	}
	return n, nil
}

// AsInt64 casts a raw value to int64.
func AsInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(stripSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrNotANumber, s)
	}
	return n, nil
}

// AsUint64 casts a raw value to uint64. Negative input is rejected rather
// than silently wrapped.
func AsUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(stripSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrNotANumber, s)
	}
	return n, nil
}

// AsFloat32 casts a raw value to float32.
func AsFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(stripSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNotANumber, s)
	}
	return float32(f), nil
}

// AsFloat64 casts a raw value to float64.
func AsFloat64(s string) (float64, error) {
	f, err := strconv.ParseFloat(stripSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNotANumber, s)
	}
	return f, nil
}

// AsBool reports whether the value is exactly the literal "true" after
// whitespace stripping. Any other content — including "True" and "false" —
// yields false. The mapping is deliberately this narrow and never fails.
func AsBool(s string) bool {
	return stripSpace(s) == "true"
}

// splitArray validates and tokenizes a brace-delimited array literal. The
// trimmed value must start with '{' and end with '}'. Interior whitespace is
// discarded and empty tokens (as from a trailing comma) are dropped.
func splitArray(s string) ([]string, error) {
	v := trimLine(s)
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		return nil, fmt.Errorf("%w: %q", ErrMalformedArray, s)
	}
	inner := stripSpace(v[1 : len(v)-1])
	var tokens []string
	for _, tok := range strings.Split(inner, ",") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// AsIntSlice casts an array literal like "{3, 4, 5}" to []int.
func AsIntSlice(s string) ([]int, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := AsInt(tok)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// AsInt64Slice casts an array literal to []int64.
func AsInt64Slice(s string) ([]int64, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(tokens))
	for i, tok := range tokens {
		n, err := AsInt64(tok)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// AsUint64Slice casts an array literal to []uint64.
func AsUint64Slice(s string) ([]uint64, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(tokens))
	for i, tok := range tokens {
		n, err := AsUint64(tok)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// AsFloat32Slice casts an array literal to []float32.
func AsFloat32Slice(s string) ([]float32, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(tokens))
	for i, tok := range tokens {
		f, err := AsFloat32(tok)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// AsFloat64Slice casts an array literal to []float64.
func AsFloat64Slice(s string) ([]float64, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := AsFloat64(tok)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// AsBoolSlice casts an array literal to []bool using the AsBool mapping per
// element.
func AsBoolSlice(s string) ([]bool, error) {
	tokens, err := splitArray(s)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(tokens))
	for i, tok := range tokens {
		out[i] = AsBool(tok)
	}
	return out, nil
}
