// nestcfg is a command-line tool for the nested-INI configuration format.
//
// It parses configuration files into a section tree and can validate,
// re-export, convert, query, and interactively browse them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/psaab/nestcfg/pkg/config"
)

const usage = `usage: nestcfg [-debug] <command> [args]

commands:
  check <file>                 parse and report the first structural error
  export <file>                parse and re-export canonical text to stdout
  json <file>                  dump the tree as indented JSON
  yaml <file>                  dump the tree as YAML
  get [-as TYPE] <file> <path> print one value; path is dot-separated section
                               names ending in a key, e.g. e.d.da
  shell <file>                 interactive browser with tab completion
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nestcfg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch rest[0] {
	case "check":
		err = cmdCheck(rest[1:], stdout)
	case "export":
		err = cmdExport(rest[1:], stdout)
	case "json":
		err = cmdJSON(rest[1:], stdout)
	case "yaml":
		err = cmdYAML(rest[1:], stdout)
	case "get":
		err = cmdGet(rest[1:], stdout, stderr)
	case "shell":
		err = cmdShell(rest[1:])
	default:
		fmt.Fprintf(stderr, "nestcfg: unknown command: %s\n", rest[0])
		fmt.Fprint(stderr, usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "nestcfg: %v\n", err)
		return 1
	}
	return 0
}

func loadParser(path string) (*config.Parser, error) {
	start := time.Now()
	p, err := config.NewFileParser(path)
	if err != nil {
		return nil, err
	}
	sections, keys := countTree(p.Root())
	slog.Debug("parsed config",
		"file", path, "sections", sections, "keys", keys, "elapsed", time.Since(start))
	return p, nil
}

// countTree returns the number of sections (excluding the root) and keys in
// the subtree.
func countTree(s *config.Section) (int, int) {
	sections, keys := 0, len(s.Keys())
	for _, c := range s.Sections() {
		cs, ck := countTree(c)
		sections += 1 + cs
		keys += ck
	}
	return sections, keys
}

func cmdCheck(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nestcfg check <file>")
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}
	sections, keys := countTree(p.Root())
	fmt.Fprintf(stdout, "%s: ok (%d sections, %d keys)\n", args[0], sections, keys)
	return nil
}

func cmdExport(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nestcfg export <file>")
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}
	return p.Root().Export(stdout)
}

func cmdJSON(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nestcfg json <file>")
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(p.Root().AsMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}

func cmdYAML(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nestcfg yaml <file>")
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(p.Root().AsMap())
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = stdout.Write(out)
	return err
}

func cmdGet(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asType := fs.String("as", "", "cast the value: int, int64, uint64, float32, float64, bool, or *-slice")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: nestcfg get [-as TYPE] <file> <path>")
	}

	p, err := loadParser(rest[0])
	if err != nil {
		return err
	}
	raw, err := resolveValue(p.Root(), rest[1])
	if err != nil {
		return err
	}

	if *asType == "" {
		fmt.Fprintln(stdout, raw)
		return nil
	}
	out, err := castValue(*asType, raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	return nil
}

// resolveValue walks dot-separated section names and returns the value of
// the final path component. Keys containing '.' are not addressable here;
// use the shell for those.
func resolveValue(root *config.Section, path string) (string, error) {
	parts := strings.Split(path, ".")
	cur := root
	for _, name := range parts[:len(parts)-1] {
		c, err := cur.Child(name)
		if err != nil {
			return "", err
		}
		cur = c
	}
	return cur.Value(parts[len(parts)-1])
}

// castValue applies the named cast to a raw value and formats the result.
func castValue(typ, raw string) (string, error) {
	switch typ {
	case "int":
		n, err := config.AsInt(raw)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "int64":
		n, err := config.AsInt64(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case "uint64":
		n, err := config.AsUint64(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil
	case "float32":
		f, err := config.AsFloat32(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	case "float64":
		f, err := config.AsFloat64(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case "bool":
		return strconv.FormatBool(config.AsBool(raw)), nil
	case "int-slice":
		v, err := config.AsIntSlice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case "int64-slice":
		v, err := config.AsInt64Slice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case "uint64-slice":
		v, err := config.AsUint64Slice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case "float32-slice":
		v, err := config.AsFloat32Slice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case "float64-slice":
		v, err := config.AsFloat64Slice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case "bool-slice":
		v, err := config.AsBoolSlice(raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unknown cast type %q", typ)
	}
}
