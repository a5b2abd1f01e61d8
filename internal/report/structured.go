package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/pipeline"
)

// RunReport is the machine-readable form of one pipeline run.
type RunReport struct {
	Name     string            `json:"name" yaml:"name"`
	RunID    string            `json:"run_id" yaml:"run_id"`
	OK       bool              `json:"ok" yaml:"ok"`
	ParseOK  bool              `json:"parse_ok" yaml:"parse_ok"`
	Analyzed bool              `json:"analyzed" yaml:"analyzed"`
	Tokens   int               `json:"tokens" yaml:"tokens"`
	Lexical  []diag.Diagnostic `json:"lexical" yaml:"lexical"`
	Syntax   []diag.Diagnostic `json:"syntax" yaml:"syntax"`
	Semantic []diag.Diagnostic `json:"semantic" yaml:"semantic"`
	Symbols  map[string]string `json:"symbols" yaml:"symbols"`
	Elapsed  string            `json:"elapsed" yaml:"elapsed"`
}

// NewRunReport summarizes res. Diagnostic slices and the symbol map are
// never nil so they encode as empty collections.
func NewRunReport(res *pipeline.Result) RunReport {
	return RunReport{
		Name:     res.Name,
		RunID:    res.RunID.String(),
		OK:       res.OK(),
		ParseOK:  res.ParseOK,
		Analyzed: res.Analyzed,
		Tokens:   res.TokenCount,
		Lexical:  res.Lexical.Items(),
		Syntax:   res.Syntax.Items(),
		Semantic: res.Semantic.Items(),
		Symbols:  res.Symbols.Snapshot(),
		Elapsed:  res.Elapsed.String(),
	}
}

// JSON writes the run report of res as indented JSON.
func JSON(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewRunReport(res)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

// YAML writes the run report of res as a YAML document.
func YAML(w io.Writer, res *pipeline.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewRunReport(res)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return nil
}

// Write renders res in the named format: text, json or yaml.
func Write(w io.Writer, format string, res *pipeline.Result, opts Options) error {
	switch format {
	case "", "text":
		return Text(w, res, opts)
	case "json":
		return JSON(w, res)
	case "yaml":
		return YAML(w, res)
	}
	return fmt.Errorf("unknown report format %q", format)
}
