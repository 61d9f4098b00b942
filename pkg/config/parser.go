package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser reads nested-INI configuration text into a Section tree.
//
// The format is line oriented:
//
//	# full-line comment (';' works too)
//	key=value          value may carry an inline # or ; comment
//	[child]            depth-1 section
//	[[grandchild]]     depth-2 section, nested under the active section
//
// A header may open at most one level deeper than the active section.
// Shallower headers re-attach to the matching ancestor, so siblings and
// dedents need no explicit close marker.
type Parser struct {
	root    *Section
	lineNum int
}

// NewParser parses the full contents of r eagerly and returns the populated
// parser. Structural failures are reported as a *ParseError.
func NewParser(r io.Reader) (*Parser, error) {
	p := &Parser{root: newSection("", 0, nil)}
	if err := p.Load(r); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFileParser opens path and parses it. The file is closed before the
// constructor returns, on success and on failure.
func NewFileParser(path string) (*Parser, error) {
	p := &Parser{root: newSection("", 0, nil)}
	if err := p.LoadFile(path); err != nil {
		return nil, err
	}
	return p, nil
}

// Root returns the anonymous depth-0 root section.
func (p *Parser) Root() *Section {
	return p.root
}

// Clear discards all sections and values and resets the parser to an empty,
// reusable state. A new Load may begin afterwards.
func (p *Parser) Clear() {
	p.root = newSection("", 0, nil)
	p.lineNum = 0
}

// LoadFile parses the named file into the current tree.
func (p *Parser) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return p.Load(f)
}

// Load parses r into the current tree. The pass is a single linear loop with
// one mutable current-section cursor; dedents walk stored parent links
// instead of unwinding a call stack, so flat-but-long files cost no stack
// depth.
func (p *Parser) Load(r io.Reader) error {
	cur := p.root
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.lineNum++
		raw := sc.Text()

		// Full-line comments are judged on the raw first character,
		// before any trimming.
		if len(raw) > 0 && (raw[0] == '#' || raw[0] == ';') {
			continue
		}

		line := trimLine(raw)
		if line == "" {
			continue
		}

		if line[0] == '[' {
			next, err := p.enterSection(cur, line)
			if err != nil {
				return err
			}
			cur = next
			continue
		}

		if err := p.addPair(cur, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// enterSection handles one header line and returns the section that becomes
// the new cursor.
func (p *Parser) enterSection(cur *Section, line string) (*Section, error) {
	name, depth, err := splitHeader(line)
	if err != nil {
		return nil, p.fail(err)
	}

	if depth > cur.Depth+1 {
		return nil, p.fail(fmt.Errorf("%w: header depth %d under section of depth %d",
			ErrSectionTooDeep, depth, cur.Depth))
	}

	parent := cur
	if depth <= cur.Depth {
		// Dedent or sibling: walk up to the ancestor at depth-1.
		for i := 0; i < cur.Depth-depth+1; i++ {
			parent = parent.parent
		}
	}

	child, err := parent.addChild(name)
	if err != nil {
		return nil, p.fail(err)
	}
	return child, nil
}

// splitHeader extracts the name and depth from a trimmed header line. The
// leading and trailing bracket counts must match, and the name must be
// non-empty and bracket-free.
func splitHeader(line string) (string, int, error) {
	open := 0
	for open < len(line) && line[open] == '[' {
		open++
	}
	closed := 0
	for closed < len(line) && line[len(line)-1-closed] == ']' {
		closed++
	}
	if open != closed || open+closed >= len(line) {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	name := line[open : len(line)-closed]
	if strings.ContainsAny(name, "[]") {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	return name, open, nil
}

// addPair handles one key=value line.
func (p *Parser) addPair(s *Section, line string) error {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return p.fail(fmt.Errorf("%w: %q", ErrMissingAssignment, line))
	}
	key := trimLine(line[:eq])
	value := trimLine(stripComment(line[eq+1:]))
	if err := s.addValue(key, value); err != nil {
		return p.fail(err)
	}
	return nil
}

func (p *Parser) fail(err error) error {
	return &ParseError{Line: p.lineNum, Err: err}
}
