// Package main provides the CLI entrypoint for binder.
//
// binder binds JSON and YAML documents onto the registered model types and
// generates registration files for model packages:
//
//	binder bind -config binder.yaml -type store.Order order.json
//	binder types
//	binder gen -pkg ./store -namespace store -out store/registry_gen.go
//	binder check -config binder.yaml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"payload-binder/binder"
	"payload-binder/internal/analyze"
	"payload-binder/internal/gen"
	"payload-binder/options"
	"payload-binder/registry"
	"payload-binder/store"
	"payload-binder/warehouse"
)

const usage = `binder binds loosely-typed documents onto registered model types.

Usage:
  binder [-v] <command> [flags]

Commands:
  bind   -config file.yaml -type store.Order [-dump] input.json|input.yaml|-
  types  list registered type names
  gen    -pkg ./store -namespace store -out store/registry_gen.go
  check  -config file.yaml
`

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("binder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	verbose := fs.Bool("v", false, "log debug diagnostics")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]

	var err error

	switch cmd {
	case "bind":
		err = runBind(rest, stdin, stdout, logger)
	case "types":
		err = runTypes(stdout)
	case "gen":
		err = runGen(rest, logger)
	case "check":
		err = runCheck(rest, stdout)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fs.Usage()

		return 2
	default:
		fmt.Fprintln(stderr, "binder:", err)
		return 1
	}
}

// newRegistry registers every model package the CLI knows.
func newRegistry() *registry.Registry {
	reg := registry.New()
	store.Register(reg)
	warehouse.Register(reg)

	return reg
}

// loadConfig reads the configuration file, or the defaults without one, and
// applies the environment on top.
func loadConfig(path string) (*options.Config, error) {
	cfg := options.Default()

	if path != "" {
		loaded, err := options.LoadFile(path)
		if err != nil {
			return nil, err
		}

		cfg = *loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func runBind(args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("bind", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")
	typeName := fs.String("type", "", "registered type to bind onto, e.g. store.Order")
	dump := fs.Bool("dump", false, "dump the bound value instead of printing JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *typeName == "" || fs.NArg() != 1 {
		return fmt.Errorf("%w: bind needs -type and one input file", errUsage)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	reg := newRegistry()

	b, err := binder.FromConfig(reg, *cfg, binder.WithLogger(logger))
	if err != nil {
		return err
	}

	input := fs.Arg(0)

	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	target, err := reg.New(*typeName)
	if err != nil {
		if suggestions := reg.Suggest(*typeName, 3); len(suggestions) > 0 {
			return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
		}

		return err
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		err = b.BindYAML(target.Interface(), data)
	default:
		err = b.BindJSON(target.Interface(), data)
	}

	if err != nil {
		return err
	}

	if *dump {
		spew.Fdump(stdout, target.Interface())
		return nil
	}

	rep, err := binder.ToRepresentation(target.Interface())
	if err != nil {
		return err
	}

	var out []byte
	if isTerminal(stdout) {
		out, err = json.MarshalIndent(rep, "", "  ")
	} else {
		out, err = json.Marshal(rep)
	}

	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = fmt.Fprintln(stdout, string(out))

	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}

	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runTypes(stdout io.Writer) error {
	reg := newRegistry()

	for _, name := range reg.Names() {
		entry, _ := reg.Entry(name)
		if _, err := fmt.Fprintf(stdout, "%s\t%s\n", name, entry.Factory); err != nil {
			return err
		}
	}

	return nil
}

func runGen(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	pkgPattern := fs.String("pkg", ".", "package to generate the registration for")
	namespace := fs.String("namespace", "", "namespace root of the package types (default: package name)")
	out := fs.String("out", "registry_gen.go", "output file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	pkg, err := analyze.LoadStructs(*pkgPattern)
	if err != nil {
		return err
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.Filename = filepath.Base(*out)
	cfg.OutputDir = filepath.Dir(*out)

	file, err := gen.NewGenerator(cfg).RenderRegistry(pkg, *namespace)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles([]gen.GeneratedFile{*file}, cfg.OutputDir); err != nil {
		return err
	}

	logger.Info("generated registration", "package", pkg.Path, "types", len(pkg.Structs), "file", *out)

	return nil
}

func runCheck(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath == "" {
		return fmt.Errorf("%w: check needs -config", errUsage)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", *configPath, err)
	}

	_, err = fmt.Fprintf(stdout, "ok: version %s, namespace %q, strict %t, loose keys %t, conversions %s\n",
		cfg.Version, cfg.Namespace, cfg.Strict, cfg.LooseKeys, strings.Join(cfg.Conversions, ","))

	return err
}
