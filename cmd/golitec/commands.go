package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/pipeline"
	"github.com/you-not-fish/golite/internal/report"
	"github.com/you-not-fish/golite/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	var writeLog bool
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token table and lexical diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runOne(args[0], true)
			if err != nil {
				return err
			}
			report.Tokens(a.stdout, res.Tokens)
			printDiagnostics(a, "lexical", res.Lexical.Items())
			if writeLog {
				path, err := a.logWriter().Lexical(res)
				if err != nil {
					return err
				}
				a.log.Info("log written", "path", path)
			}
			if res.Lexical.Len() > 0 {
				return errFound
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&writeLog, "log", false, "write the lexical log file")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree and syntax diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runOne(args[0], false)
			if err != nil {
				return err
			}
			if asJSON {
				if err := syntax.FprintJSON(a.stdout, res.File); err != nil {
					return fmt.Errorf("print tree: %w", err)
				}
			} else {
				syntax.Fprint(a.stdout, res.File)
			}
			printDiagnostics(a, "lexical", res.Lexical.Items())
			printDiagnostics(a, "syntax", res.Syntax.Items())
			if res.Lexical.Len() > 0 || !res.ParseOK {
				return errFound
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		writeLog bool
		jobs     int
	)
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Run the lexer, parser and semantic checker",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := pipeline.ReadSources(args)
			if err != nil {
				return err
			}

			start := time.Now()
			opts := a.cfg.PipelineOptions()
			opts.KeepTokens = writeLog
			results, err := pipeline.RunAll(cmd.Context(), srcs, opts, jobs)
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			a.log.Debug("batch finished", "files", len(results), "elapsed", time.Since(start))

			failed := 0
			format := a.cfg.Log.Format
			for i, res := range results {
				if i > 0 && format == "yaml" {
					fmt.Fprintln(a.stdout, "---")
				}
				if err := report.Write(a.stdout, format, res, report.Options{Color: a.color(a.stdout)}); err != nil {
					return err
				}
				if format == "text" && res.Analyzed {
					report.Symbols(a.stdout, res.Symbols)
				}
				a.logRun(res)
				if writeLog {
					paths, err := a.logWriter().WriteAll(res)
					if err != nil {
						return err
					}
					a.log.Info("logs written", "file", res.Name, "paths", paths)
				}
				if !res.OK() {
					failed++
				}
			}
			if failed > 0 {
				return errFound
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&writeLog, "log", false, "write the lexical, syntax and semantic log files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files checked in parallel")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "golitec version %s\n", Version)
			fmt.Fprintf(a.stdout, "go version %s\n", runtime.Version())
		},
	}
}

// runOne reads and runs a single file through the pipeline, keeping the
// token stream if keepTokens is set.
func (a *app) runOne(path string, keepTokens bool) (*pipeline.Result, error) {
	srcs, err := pipeline.ReadSources([]string{path})
	if err != nil {
		return nil, err
	}
	opts := a.cfg.PipelineOptions()
	opts.KeepTokens = keepTokens
	res := pipeline.Run(srcs[0].Name, srcs[0].Text, opts)
	a.logRun(res)
	return res, nil
}

func (a *app) logRun(res *pipeline.Result) {
	a.log.Debug("run finished",
		"file", res.Name,
		"run", res.RunID.String(),
		"elapsed", res.Elapsed,
		"lexical", res.Lexical.Len(),
		"syntax", res.Syntax.Len(),
		"semantic", res.Semantic.Len(),
	)
}

// printDiagnostics writes one stage's diagnostics to stderr.
func printDiagnostics(a *app, stage string, ds []diag.Diagnostic) {
	if len(ds) == 0 {
		return
	}
	fmt.Fprintf(a.stderr, "%s diagnostics:\n", stage)
	for _, d := range ds {
		fmt.Fprintf(a.stderr, "  %s\n", d)
	}
}
