package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/psaab/nestcfg/pkg/cmdtree"
	"github.com/psaab/nestcfg/pkg/config"
)

var errExit = errors.New("exit")

// shell is the interactive browser over a parsed configuration tree. It
// keeps one cursor section, like the parser does while reading.
type shell struct {
	root *config.Section
	cur  *config.Section
	out  io.Writer
	rl   *readline.Instance
}

func cmdShell(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nestcfg shell <file>")
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}

	sh := &shell{root: p.Root(), cur: p.Root()}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(),
		HistoryFile:     filepath.Join(os.TempDir(), "nestcfg_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &shellCompleter{sh: sh},
		Listener: readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
			if key != '?' || pos < 1 {
				return line, pos, false
			}
			// Strip the '?' that readline already inserted.
			cleanLine := make([]rune, 0, len(line)-1)
			cleanLine = append(cleanLine, line[:pos-1]...)
			cleanLine = append(cleanLine, line[pos:]...)
			sh.showHelp(string(cleanLine[:pos-1]))
			return cleanLine, pos - 1, true
		}),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	sh.rl = rl
	sh.out = rl.Stdout()

	fmt.Fprintf(sh.out, "nestcfg shell — %s\n", args[0])
	fmt.Fprintln(sh.out, "Type '?' for help")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sh.dispatch(line); err != nil {
			if err == errExit {
				break
			}
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
		rl.SetPrompt(sh.prompt())
	}
	return nil
}

func (sh *shell) prompt() string {
	return fmt.Sprintf("nestcfg:%s> ", sh.path())
}

// path renders the cursor's location from the root, "/" separated.
func (sh *shell) path() string {
	if sh.cur == sh.root {
		return "/"
	}
	var names []string
	for s := sh.cur; s != nil && s.Name != ""; s = s.Parent() {
		names = append(names, s.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return "/" + strings.Join(names, "/")
}

func (sh *shell) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "ls":
		return sh.cmdLs()
	case "cd":
		return sh.cmdCd(args)
	case "pwd":
		fmt.Fprintln(sh.out, sh.path())
		return nil
	case "get":
		return sh.cmdGet(args)
	case "cast":
		return sh.cmdCast(args)
	case "export":
		return sh.cur.Export(sh.out)
	case "help":
		cmdtree.WriteHelp(sh.out, cmdtree.HelpCandidates(cmdtree.ShellTree))
		return nil
	case "exit", "quit":
		return errExit
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (sh *shell) cmdLs() error {
	for _, k := range sh.cur.Keys() {
		v, _ := sh.cur.Value(k)
		fmt.Fprintf(sh.out, "%s=%s\n", k, v)
	}
	for _, c := range sh.cur.Sections() {
		fmt.Fprintf(sh.out, "[%s]\n", c.Name)
	}
	return nil
}

func (sh *shell) cmdCd(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cd <section|..|/>")
	}
	switch args[0] {
	case "/":
		sh.cur = sh.root
	case "..":
		if p := sh.cur.Parent(); p != nil {
			sh.cur = p
		}
	default:
		c, err := sh.cur.Child(args[0])
		if err != nil {
			return err
		}
		sh.cur = c
	}
	return nil
}

func (sh *shell) cmdGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <key>")
	}
	v, err := sh.cur.Value(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, v)
	return nil
}

func (sh *shell) cmdCast(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cast <type> <key>")
	}
	raw, err := sh.cur.Value(args[1])
	if err != nil {
		return err
	}
	out, err := castValue(args[0], raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, out)
	return nil
}

// showHelp prints '?' help for the partially typed line.
func (sh *shell) showHelp(text string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		cmdtree.WriteHelp(sh.out, cmdtree.HelpCandidates(cmdtree.ShellTree))
		return
	}
	names := cmdtree.Complete(cmdtree.ShellTree, words, "", sh.cur)
	if len(names) == 0 {
		fmt.Fprintln(sh.out, "  (no help available)")
		return
	}
	candidates := make([]cmdtree.Candidate, len(names))
	for i, name := range names {
		candidates[i] = cmdtree.Candidate{Name: name, Desc: lookupDesc(words, name)}
	}
	cmdtree.WriteHelp(sh.out, candidates)
}

// lookupDesc finds a static description for a candidate under the given
// command path. Dynamic candidates (section and key names) have none.
func lookupDesc(words []string, name string) string {
	current := cmdtree.ShellTree
	for _, w := range words {
		node, ok := current[w]
		if !ok || node.Children == nil {
			return ""
		}
		current = node.Children
	}
	if node, ok := current[name]; ok {
		return node.Desc
	}
	return ""
}

type shellCompleter struct {
	sh *shell
}

func (sc *shellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	trailingSpace := len(text) > 0 && text[len(text)-1] == ' '
	partial := ""
	if !trailingSpace && len(words) > 0 {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	candidates := cmdtree.Complete(cmdtree.ShellTree, words, partial, sc.sh.cur)
	if len(candidates) == 0 {
		return nil, 0
	}
	sort.Strings(candidates)

	if len(candidates) == 1 {
		return [][]rune{[]rune(candidates[0][len(partial):] + " ")}, len(partial)
	}

	// Multiple matches: list them above the prompt and extend to the
	// longest common prefix.
	help := make([]cmdtree.Candidate, len(candidates))
	for i, name := range candidates {
		help[i] = cmdtree.Candidate{Name: name, Desc: lookupDesc(words, name)}
	}
	cmdtree.WriteHelp(sc.sh.out, help)

	suffix := cmdtree.CommonPrefix(candidates)[len(partial):]
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, len(partial)
}
