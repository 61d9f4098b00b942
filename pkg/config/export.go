package config

import (
	"fmt"
	"io"
	"strings"
)

// Export writes the section subtree to w in the nested-INI text format.
// Values come out in first-insertion order and child sections in
// first-creation order, so re-parsing the output reproduces the same tree.
// Comments and blank-line placement from the original input are not kept.
func (s *Section) Export(w io.Writer) error {
	var b strings.Builder
	s.export(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the subtree as configuration text.
func (s *Section) String() string {
	var b strings.Builder
	s.export(&b)
	return b.String()
}

func (s *Section) export(b *strings.Builder) {
	if s.Name != "" {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("[", s.Depth))
		b.WriteString(s.Name)
		b.WriteString(strings.Repeat("]", s.Depth))
		b.WriteByte('\n')
	}
	for _, k := range s.valueOrder {
		fmt.Fprintf(b, "%s=%s\n", k, s.values[k])
	}
	for _, name := range s.childOrder {
		s.children[name].export(b)
	}
}
