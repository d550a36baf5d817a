// Package cmd wires up the CLI flags and starts the interpreter.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"smallsh/config"
	"smallsh/internal/metrics"
	"smallsh/internal/session"
	"smallsh/internal/shell"
	"smallsh/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X smallsh/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// flagValues holds what was typed on the command line.  Only flags the
// user actually set are applied over the file and environment layers.
type flagValues struct {
	configPath string
	prompt     string
	maxLine    int
	nullDevice string
	expand     string
	verbose    int
}

// Execute parses args and runs the shell on the process's own stdio.
func Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("smallsh", flag.ContinueOnError)
	var fv flagValues

	// ── interaction ──────────────────────────────────────────────
	fs.StringVar(&fv.prompt, "prompt", config.DefaultPrompt, "Prompt written before each command")
	fs.IntVar(&fv.maxLine, "max-line", config.DefaultMaxLine, "Longest accepted input line in bytes")

	// ── execution ────────────────────────────────────────────────
	fs.StringVar(&fv.expand, "expand", config.ExpandAll, `How "$$" is expanded: all | tail`)
	fs.StringVar(&fv.nullDevice, "null-device", config.DefaultNullDevice, "Stdin/stdout for background commands")

	// ── sources ──────────────────────────────────────────────────
	fs.StringVar(&fv.configPath, "config", "", "YAML rc file (default $HOME/"+config.DefaultRCFile+")")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&fv.verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "Print the resolved configuration and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("smallsh %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s (commands are read from stdin)", strings.Join(fs.Args(), " "))
	}

	// ── resolve configuration ────────────────────────────────────
	cfg, err := resolveConfig(fs, &fv)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if dryRun {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		if cfg.ConfigPath != "" {
			fmt.Printf("# loaded from %s\n", cfg.ConfigPath)
		}
		fmt.Print(out)
		return nil
	}

	return run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
}

// resolveConfig layers defaults, the rc file, the environment and the
// flags the user set, in that order.
func resolveConfig(fs *flag.FlagSet, fv *flagValues) (*config.Config, error) {
	cfg := config.Default()

	path, required := config.ResolvePath(fv.configPath)
	if err := config.LoadFile(cfg, path, required); err != nil {
		return nil, err
	}
	config.LoadFromEnv(cfg)

	if fs.Changed("prompt") {
		cfg.Prompt = fv.prompt
	}
	if fs.Changed("max-line") {
		cfg.MaxLine = fv.maxLine
	}
	if fs.Changed("null-device") {
		cfg.NullDevice = fv.nullDevice
	}
	if fs.Changed("expand") {
		cfg.ExpandMode = strings.ToLower(fv.expand)
	}
	if fs.Changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	return cfg, nil
}

// ── build components ─────────────────────────────────────────────────

func run(ctx context.Context, cfg *config.Config, stdin *os.File, stdout, stderr io.Writer) error {
	logger := util.NewLogger(cfg.Verbose)
	m := metrics.New()

	sess := session.New(util.NewSyncWriter(stdout), stderr, logger)
	sess.Interactive = term.IsTerminal(int(stdin.Fd()))

	sh, err := shell.New(cfg, sess, stdin, m)
	if err != nil {
		return err
	}
	if cfg.ConfigPath != "" {
		logger.Verbose("config loaded from %s", cfg.ConfigPath)
	}
	logger.Debug("interactive=%v", sess.Interactive)
	return sh.Run(ctx)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `smallsh – a small interactive shell v%s

Usage:
  smallsh [options]

Commands are read one per line from stdin.  Built-ins: exit, cd [dir],
status.  Control tokens: "< file", "> file", a trailing "&", and "$$"
for the shell's pid.

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  SMALLSH_CONFIG, SMALLSH_PROMPT, SMALLSH_MAX_LINE, SMALLSH_NULL_DEVICE,
  SMALLSH_EXPAND, SMALLSH_VERBOSE

Examples:
  smallsh                                     Interactive session
  smallsh -vv --prompt '$ '                   Verbose, custom prompt
  smallsh --dry-run                           Show resolved configuration
  printf 'ls\nstatus\n' | smallsh             Run a script from a pipe
`)
}
