// Package config implements the nested-INI configuration parser and data model.
package config

import "fmt"

// Section is a node in the configuration tree. It holds key/value pairs and
// nested child sections, both addressable by name and iterable in the order
// they first appeared in the source text.
type Section struct {
	// Name is the section's identifier, unique among siblings under the
	// same parent. The root section has no name.
	Name string

	// Depth is the nesting level: the root is 0 and every child's depth is
	// its parent's depth + 1. Assigned once at creation, never changed.
	Depth int

	parent     *Section
	values     map[string]string
	valueOrder []string
	children   map[string]*Section
	childOrder []string
}

func newSection(name string, depth int, parent *Section) *Section {
	return &Section{
		Name:     name,
		Depth:    depth,
		parent:   parent,
		values:   map[string]string{},
		children: map[string]*Section{},
	}
}

// Parent returns the owning section, or nil for the root. The back-reference
// exists for ancestor traversal only; the tree owns its children.
func (s *Section) Parent() *Section {
	return s.parent
}

// Value returns the raw string stored under key.
func (s *Section) Value(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.Name)
	}
	return v, nil
}

// Child returns the child section called name.
func (s *Section) Child(name string) (*Section, error) {
	c, ok := s.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in section %q", ErrSectionNotFound, name, s.Name)
	}
	return c, nil
}

// Keys returns the section's keys in first-insertion order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.valueOrder...)
}

// Sections returns the child sections in first-creation order.
func (s *Section) Sections() []*Section {
	out := make([]*Section, 0, len(s.childOrder))
	for _, name := range s.childOrder {
		out = append(out, s.children[name])
	}
	return out
}

// AsMap converts the subtree to a plain nested map for JSON or YAML dumps.
// Values and child sections share one namespace; a child section shadows a
// value of the same name. Insertion order is not preserved — use Export for
// faithful output.
func (s *Section) AsMap() map[string]any {
	m := make(map[string]any, len(s.valueOrder)+len(s.childOrder))
	for _, k := range s.valueOrder {
		m[k] = s.values[k]
	}
	for _, name := range s.childOrder {
		m[name] = s.children[name].AsMap()
	}
	return m
}

// addValue inserts a key/value pair. Duplicate keys are an error, never an
// overwrite.
func (s *Section) addValue(key, value string) error {
	if _, ok := s.values[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	s.values[key] = value
	s.valueOrder = append(s.valueOrder, key)
	return nil
}

// addChild creates a child named name one level below s. Sibling name
// collisions are an error.
func (s *Section) addChild(name string) (*Section, error) {
	if _, ok := s.children[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, name)
	}
	c := newSection(name, s.Depth+1, s)
	s.children[name] = c
	s.childOrder = append(s.childOrder, name)
	return c, nil
}
