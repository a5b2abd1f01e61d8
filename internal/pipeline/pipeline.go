// Package pipeline runs the Go-lite stages (lexer, parser, semantic
// analyzer) over in-memory sources. Every run owns fresh stage instances,
// so runs never share state and may proceed concurrently.
package pipeline

import (
	"context"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/sema"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// Options controls a pipeline run. The zero value runs all stages with
// automatic semicolon insertion and no syntax error limit.
type Options struct {
	NoASI                bool        // disable automatic semicolon insertion
	KeepTokens           bool        // retain the token stream in Result.Tokens
	MaxSyntaxErrors      int         // 0 means unlimited
	AnalyzeOnSyntaxError bool        // analyze the partial tree after syntax errors
	Sema                 sema.Config // semantic analyzer configuration
}

// Source is one named input text.
type Source struct {
	Name string
	Text string
}

// Result holds everything one run produced.
type Result struct {
	Name  string
	RunID uuid.UUID

	Tokens     []syntax.Token // including the final EOF; nil unless KeepTokens
	TokenCount int            // tokens produced, including the final EOF

	Lexical  diag.List
	Syntax   diag.List
	Semantic diag.List // semantic and internal diagnostics

	File     *syntax.Program // possibly partial when !ParseOK
	ParseOK  bool
	Analyzed bool          // whether the semantic stage ran
	Symbols  *types.Table // nil unless Analyzed

	Elapsed time.Duration
}

// Diagnostics returns the diagnostics of all stages, grouped by stage.
func (r *Result) Diagnostics() diag.List {
	var all diag.List
	all.Add(r.Lexical)
	all.Add(r.Syntax)
	all.Add(r.Semantic)
	return all
}

// OK reports whether the run produced no diagnostics at all.
func (r *Result) OK() bool {
	return r.Lexical.Len() == 0 && r.Syntax.Len() == 0 && r.Semantic.Len() == 0
}

// Run lexes, parses and analyzes src.
// Semantic analysis is skipped after a syntax error unless
// opts.AnalyzeOnSyntaxError is set.
func Run(name, src string, opts Options) *Result {
	start := time.Now()
	res := &Result{Name: name, RunID: uuid.New()}

	var mode syntax.Mode
	if opts.NoASI {
		mode |= syntax.NoASI
	}
	c := syntax.NewCursor(res.count(syntax.TokenizeMode(src, &res.Lexical, mode), opts.KeepTokens))
	defer c.Release()

	p := syntax.NewParser(c, &res.Syntax)
	p.SetMaxErrors(opts.MaxSyntaxErrors)
	res.File = p.Parse()
	res.ParseOK = p.Errors() == 0

	// A parse aborted at the error limit leaves input unread; scan it so
	// every lexical problem is still reported.
	for c.Advance().Kind != syntax.EOF {
	}

	if res.ParseOK || opts.AnalyzeOnSyntaxError {
		conf := opts.Sema
		a := sema.New(&conf)
		res.Semantic = a.Analyze(res.File)
		res.Symbols = a.Symbols()
		res.Analyzed = true
	}

	res.Elapsed = time.Since(start)
	return res
}

// count passes seq through, counting tokens as the parser pulls them and
// keeping them only when keep is set.
func (r *Result) count(seq iter.Seq[syntax.Token], keep bool) iter.Seq[syntax.Token] {
	return func(yield func(syntax.Token) bool) {
		for tok := range seq {
			r.TokenCount++
			if keep {
				r.Tokens = append(r.Tokens, tok)
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// RunAll runs every source through its own pipeline, at most limit at a
// time (limit <= 0 means no limit). Results are in input order. It stops
// starting new runs once ctx is done and then returns ctx's error along
// with the results computed so far; entries never run are nil.
func RunAll(ctx context.Context, srcs []Source, opts Options, limit int) ([]*Result, error) {
	results := make([]*Result, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Run(src.Name, src.Text, opts)
			return nil
		})
	}
	return results, g.Wait()
}

// ReadSources reads the named files.
func ReadSources(paths []string) ([]Source, error) {
	srcs := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		srcs = append(srcs, Source{Name: path, Text: string(data)})
	}
	return srcs, nil
}
