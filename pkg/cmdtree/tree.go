// Package cmdtree defines the canonical command tree for the nestcfg
// interactive shell.
//
// It is the single source of truth for tab completion and '?' help in
// cmd/nestcfg: a command added here automatically appears in both.
package cmdtree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/psaab/nestcfg/pkg/config"
)

// Node is a completion tree node with a description, static children, and
// optional dynamic candidates drawn from the currently selected section.
type Node struct {
	Desc      string
	Children  map[string]*Node
	DynamicFn func(cur *config.Section) []string
}

// Candidate holds a command name and its description for display.
type Candidate struct {
	Name string
	Desc string
}

// CastTypes lists the target types accepted by the cast command, in the
// order they are displayed.
var CastTypes = []string{
	"int", "int64", "uint64", "float32", "float64", "bool",
	"int-slice", "int64-slice", "uint64-slice", "float32-slice",
	"float64-slice", "bool-slice",
}

func childNames(cur *config.Section) []string {
	secs := cur.Sections()
	names := make([]string, len(secs))
	for i, s := range secs {
		names[i] = s.Name
	}
	return names
}

func keyNames(cur *config.Section) []string {
	return cur.Keys()
}

// ShellTree defines tab completion for the interactive shell.
var ShellTree = map[string]*Node{
	"ls":     {Desc: "List keys and child sections of the current section"},
	"cd":     {Desc: "Change section ('..' for parent, '/' for root)", DynamicFn: childNames},
	"pwd":    {Desc: "Show the current section path"},
	"get":    {Desc: "Print the raw value of a key", DynamicFn: keyNames},
	"cast":   {Desc: "Cast a value: cast <type> <key>", Children: castChildren()},
	"export": {Desc: "Export the current section subtree as text"},
	"help":   {Desc: "Show available commands"},
	"exit":   {Desc: "Leave the shell"},
}

func castChildren() map[string]*Node {
	m := make(map[string]*Node, len(CastTypes))
	for _, typ := range CastTypes {
		m[typ] = &Node{Desc: "Cast to " + typ, DynamicFn: keyNames}
	}
	return m
}

// Complete walks the tree to find completion candidates for the given words
// and partial token. cur supplies dynamic candidates (section and key names).
func Complete(tree map[string]*Node, words []string, partial string, cur *config.Section) []string {
	current := tree
	var currentNode *Node
	for _, w := range words {
		node, ok := current[w]
		if !ok {
			// Word not in static children — if the parent has a
			// DynamicFn, treat it as a consumed dynamic value.
			if currentNode != nil && currentNode.DynamicFn != nil {
				currentNode = nil
				continue
			}
			return nil
		}
		currentNode = node
		if node.Children == nil {
			if node.DynamicFn != nil && cur != nil {
				return FilterPrefix(node.DynamicFn(cur), partial)
			}
			return nil
		}
		current = node.Children
	}

	var candidates []string
	if len(words) == 0 {
		candidates = keysOf(current)
	} else if currentNode != nil {
		candidates = keysOf(currentNode.Children)
		if currentNode.DynamicFn != nil && cur != nil {
			candidates = append(candidates, currentNode.DynamicFn(cur)...)
		}
	}
	return FilterPrefix(candidates, partial)
}

// HelpCandidates returns Candidates from a tree level for help display.
func HelpCandidates(tree map[string]*Node) []Candidate {
	candidates := make([]Candidate, 0, len(tree))
	for name, node := range tree {
		candidates = append(candidates, Candidate{Name: name, Desc: node.Desc})
	}
	return candidates
}

// WriteHelp prints aligned name/description candidate rows.
func WriteHelp(w io.Writer, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	maxWidth := 12
	for _, c := range candidates {
		if len(c.Name)+2 > maxWidth {
			maxWidth = len(c.Name) + 2
		}
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, c := range candidates {
		if c.Desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
		} else {
			fmt.Fprintf(&sb, "  %s\n", c.Name)
		}
	}
	io.WriteString(w, sb.String())
}

// CommonPrefix returns the longest shared prefix among the given strings.
func CommonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

// FilterPrefix returns only items that start with the given prefix.
func FilterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		return items
	}
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}

func keysOf(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
