// Package sema implements semantic analysis for Go-lite programs.
//
// The analyzer walks a parsed Program once, keeping a single flat symbol
// table, and reports redeclarations, undefined names, type mismatches,
// non-boolean conditions, unknown package receivers and return mismatches
// as diagnostics. It never modifies the tree.
package sema

import (
	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// DefaultBuiltinPackages lists the package receivers accepted without an
// import when Config.BuiltinPackages is nil.
var DefaultBuiltinPackages = []string{"fmt"}

// Rule is an additional check run on every statement and expression the
// analyzer visits. It returns a diagnostic and true to report a problem.
// Rules may read but must not modify the table.
type Rule func(n syntax.Node, table *types.Table) (diag.Diagnostic, bool)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// StrictImports reports calls whose receiver is neither an imported
	// package nor a builtin package. By default such calls are accepted.
	StrictImports bool

	// BuiltinPackages are package receivers that need no import.
	// If nil, DefaultBuiltinPackages is used.
	BuiltinPackages []string

	// Rules are run in order after the built-in rules for each node.
	Rules []Rule
}

// Analyzer performs semantic analysis. An Analyzer may be reused, but not
// concurrently: every Analyze call starts from an empty table.
type Analyzer struct {
	conf *Config

	table *types.Table
	diags diag.List
}

// New returns an analyzer using conf. A nil conf means the defaults.
func New(conf *Config) *Analyzer {
	if conf == nil {
		conf = &Config{}
	}
	return &Analyzer{conf: conf, table: types.NewTable()}
}

// Analyze checks prog and returns the semantic and internal diagnostics in
// the order they were found. A nil prog yields no diagnostics.
func (a *Analyzer) Analyze(prog *syntax.Program) diag.List {
	c := newChecker(a.conf)
	if prog != nil {
		c.checkProgram(prog)
	}
	a.table = c.table
	a.diags = c.diags
	return a.diags
}

// Symbols returns the symbol table built by the most recent Analyze call.
// The caller must not modify it.
func (a *Analyzer) Symbols() *types.Table {
	return a.table
}

// Analyze checks prog with a fresh analyzer and returns its diagnostics and
// symbol table.
func Analyze(prog *syntax.Program, conf *Config) (diag.List, *types.Table) {
	a := New(conf)
	diags := a.Analyze(prog)
	return diags, a.Symbols()
}
