// Package main implements golitec, the Go-lite front-end driver.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/golite/internal/config"
	"github.com/you-not-fish/golite/internal/report"
)

// Version information
const Version = "0.1.0-dev"

// errFound is returned by commands that completed but reported
// diagnostics. The diagnostics are already printed, so main only sets
// the exit code.
var errFound = errors.New("diagnostics found")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes golitec with args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(&app{stdin: stdin, stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFound) {
			fmt.Fprintf(stderr, "golitec: %v\n", err)
		}
		return 1
	}
	return 0
}

// app carries the state shared by all subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	cfgPath string
	noASI   bool
	logDir  string
	user    string
	format  string
	noColor bool
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "golitec",
		Short: "Lexer, parser and semantic checker for Go-lite",
		Long: `golitec runs the Go-lite front end over source files.

Examples:
  golitec tokens prog.go         # token table and lexical errors
  golitec parse --json prog.go   # syntax tree as JSON
  golitec check a.go b.go        # full check, files in parallel
  golitec repl                   # interactive checking`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	f.BoolVar(&a.noASI, "no-asi", false, "disable automatic semicolon insertion")
	f.StringVar(&a.logDir, "log-dir", "", "directory for stage log files")
	f.StringVar(&a.user, "user", "", "user name used in log file names")
	f.StringVar(&a.format, "format", "", "report format: text, json or yaml")
	f.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Find(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("no-asi") {
		cfg.Lexer.ASI = !a.noASI
	}
	if flags.Changed("log-dir") {
		cfg.Log.Dir = a.logDir
	}
	if flags.Changed("user") {
		cfg.Log.User = a.user
	}
	if flags.Changed("format") {
		cfg.Log.Format = a.format
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	a.cfg = cfg
	a.log = newLogger(cfg, a.stderr)
	a.log.Debug("config loaded", "path", a.cfgPath, "format", cfg.Log.Format, "asi", cfg.Lexer.ASI)
	return nil
}

// newLogger returns a text logger for terminals and a JSON logger
// otherwise, at the configured level.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if report.AutoColor(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// color reports whether text output to w is colored.
func (a *app) color(w io.Writer) bool {
	return !a.noColor && report.AutoColor(w)
}

func (a *app) logWriter() *report.LogWriter {
	return &report.LogWriter{Dir: a.cfg.Log.Dir, User: a.cfg.Log.User}
}
