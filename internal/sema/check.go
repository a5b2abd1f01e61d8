package sema

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// Checker holds the state of one analysis run.
type Checker struct {
	conf *Config

	table *types.Table
	diags diag.List

	// Registries
	packages mapset.Set // builtin and imported package names
	builtins mapset.Set // builtin function names
	funcs    mapset.Set // declared function names

	results  map[string]*types.Basic       // result type per declared function
	inferred map[syntax.Expr]*types.Basic // memoized expression types

	// Function context
	fn *syntax.FuncDecl // enclosing function, nil at top level
}

func newChecker(conf *Config) *Checker {
	c := &Checker{
		conf:     conf,
		table:    types.NewTable(),
		packages: mapset.NewSet(),
		builtins: mapset.NewSet(),
		funcs:    mapset.NewSet(),
		results:  make(map[string]*types.Basic),
		inferred: make(map[syntax.Expr]*types.Basic),
	}

	pkgs := conf.BuiltinPackages
	if pkgs == nil {
		pkgs = DefaultBuiltinPackages
	}
	for _, p := range pkgs {
		c.packages.Add(p)
	}
	for _, name := range types.BuiltinNames() {
		c.builtins.Add(name)
	}
	return c
}

// checkProgram analyzes a whole program.
func (c *Checker) checkProgram(prog *syntax.Program) {
	// Phase 1: Collect function names and result types so calls may
	// precede the declaration they refer to.
	c.collectFuncs(prog.Decls)

	// Phase 2: Check declarations and statements in source order.
	for _, n := range prog.Decls {
		c.guard(n, func() { c.decl(n) })
	}
}

// guard runs f and records a panic escaping it as an Internal diagnostic
// at n, so the remaining declarations are still checked.
func (c *Checker) guard(n syntax.Node, f func()) {
	defer func() {
		if r := recover(); r != nil {
			c.diags.Report(internalf(n, "internal error checking %T: %v", n, r))
		}
	}()
	f()
}

// apply runs one rule for node n and records the diagnostic it returns.
// A panic in the rule is recorded as an Internal diagnostic at n and the
// traversal continues.
func (c *Checker) apply(rule string, n syntax.Node, r func() (diag.Diagnostic, bool)) {
	defer func() {
		if p := recover(); p != nil {
			c.diags.Report(internalf(n, "internal error in %s rule: %v", rule, p))
		}
	}()
	if d, ok := r(); ok {
		c.diags.Report(d)
	}
}

// custom runs the configured extra rules on n.
func (c *Checker) custom(n syntax.Node) {
	for i, r := range c.conf.Rules {
		r := r
		c.apply(fmt.Sprintf("custom #%d", i+1), n, func() (diag.Diagnostic, bool) {
			return r(n, c.table)
		})
	}
}

// typeOf returns the inferred type of e, or nil if it is unknown.
func (c *Checker) typeOf(e syntax.Expr) *types.Basic {
	if t, ok := c.inferred[e]; ok {
		return t
	}
	t := c.infer(e)
	c.inferred[e] = t
	return t
}
