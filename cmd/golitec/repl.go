package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/golite/internal/pipeline"
	"github.com/you-not-fish/golite/internal/report"
)

const (
	prompt     = "golite> "
	contPrompt = "   ...> "
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Check Go-lite snippets interactively",
		Long: `repl reads Go-lite source and checks each chunk with a fresh pipeline.
A line ending in '\' continues the chunk on the next line.
Enter :quit or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := newEvaluator(a.cfg.PipelineOptions(), a.cfg.Repl.CacheSize, a.color(a.stdout))
			if err != nil {
				return err
			}
			return a.repl(ev)
		},
	}
}

// evaluator checks source chunks and caches the rendered reports by
// source text.
type evaluator struct {
	opts  pipeline.Options
	color bool
	cache *lru.ARCCache
	hits  int
}

func newEvaluator(opts pipeline.Options, size int, color bool) (*evaluator, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &evaluator{opts: opts, color: color, cache: cache}, nil
}

// eval returns the report for src.
func (ev *evaluator) eval(src string) (string, error) {
	if out, ok := ev.cache.Get(src); ok {
		ev.hits++
		return out.(string), nil
	}
	res := pipeline.Run("<repl>", src, ev.opts)

	var buf bytes.Buffer
	if err := report.Text(&buf, res, report.Options{Color: ev.color}); err != nil {
		return "", err
	}
	if res.Analyzed && res.Symbols.Len() > 0 {
		report.Symbols(&buf, res.Symbols)
	}
	out := buf.String()
	ev.cache.Add(src, out)
	return out, nil
}

// repl runs the interactive loop until EOF or :quit.
func (a *app) repl(ev *evaluator) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := a.historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	err := readChunks(line, func(src string) error {
		line.AppendHistory(src)
		out, err := ev.eval(src)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, out)
		return nil
	})

	if history != "" {
		if f, ferr := os.Create(history); ferr == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		} else {
			a.log.Warn("cannot save history", "path", history, "err", ferr)
		}
	}
	a.log.Debug("repl finished", "cache_hits", ev.hits)
	return err
}

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(p string) (string, error)
}

// readChunks prompts for chunks and passes each non-empty one to fn.
// It returns nil on EOF, :quit or an aborted prompt.
func readChunks(p prompter, fn func(src string) error) error {
	var chunk []string
	for {
		ps := prompt
		if len(chunk) > 0 {
			ps = contPrompt
		}
		text, err := p.Prompt(ps)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if len(chunk) == 0 && strings.TrimSpace(text) == ":quit" {
			return nil
		}
		if strings.HasSuffix(text, `\`) {
			chunk = append(chunk, strings.TrimSuffix(text, `\`))
			continue
		}
		chunk = append(chunk, text)
		src := strings.Join(chunk, "\n")
		chunk = chunk[:0]
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := fn(src); err != nil {
			return err
		}
	}
}

func (a *app) historyPath() string {
	if a.cfg.Repl.History != "" {
		return a.cfg.Repl.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".golite_history")
}
