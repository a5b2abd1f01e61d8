package sema

import (
	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// expr visits e in source order, applying the reference rules. Binary and
// unary expressions are visited through their operands only.
func (c *Checker) expr(e syntax.Expr) {
	switch e := e.(type) {
	case nil:
		return

	case *syntax.Name:
		c.apply("undefined", e, func() (diag.Diagnostic, bool) {
			return undefined(c.table, e)
		})

	case *syntax.BasicLit:
		// Nothing to check

	case *syntax.BinaryExpr:
		c.expr(e.X)
		c.expr(e.Y)

	case *syntax.UnaryExpr:
		c.expr(e.X)

	case *syntax.CallExpr:
		c.call(e)

	default:
		c.diags.Report(internalf(e, "unexpected expression %T", e))
		return
	}
	c.custom(e)
}

// call checks a call. The receiver of a qualified call names a package,
// not a variable, so it is not looked up in the table.
func (c *Checker) call(e *syntax.CallExpr) {
	if e.Receiver != nil {
		c.apply("import", e, func() (diag.Diagnostic, bool) {
			return unknownPackage(c.conf.StrictImports, c.packages, e)
		})
	} else {
		c.apply("undefined function", e, func() (diag.Diagnostic, bool) {
			return undefinedFunc(c.funcs, c.builtins, e)
		})
	}

	for _, a := range e.Args {
		c.expr(a)
	}
}

// ----------------------------------------------------------------------------
// Type inference

// infer computes the type of e. It returns nil when the type is unknown,
// which suppresses diagnostics that depend on it.
func (c *Checker) infer(e syntax.Expr) *types.Basic {
	switch e := e.(type) {
	case *syntax.BasicLit:
		return types.FromLit(e.Kind)

	case *syntax.Name:
		sym := c.table.Lookup(e.Value)
		if sym == nil || !types.IsKnown(sym.Type) {
			return nil
		}
		return sym.Type

	case *syntax.BinaryExpr:
		return c.binaryType(e.Op, c.typeOf(e.X), c.typeOf(e.Y))

	case *syntax.UnaryExpr:
		if e.Op == syntax.Not {
			return types.Typ[types.Bool]
		}
		return c.typeOf(e.X)

	case *syntax.CallExpr:
		return c.callType(e)
	}
	return nil
}

// binaryType returns the type of x op y. Comparisons and logical
// operators yield bool; everything else is numerically promoted.
func (c *Checker) binaryType(op syntax.Kind, x, y *types.Basic) *types.Basic {
	if op.IsRelational() || op.IsLogical() {
		return types.Typ[types.Bool]
	}
	return types.Promote(x, y)
}

// callType returns the result type of a call to a declared function or a
// builtin. Package functions have unknown results.
func (c *Checker) callType(e *syntax.CallExpr) *types.Basic {
	if e.Receiver != nil {
		return nil
	}
	name := e.Method.Value
	if c.funcs.Contains(name) {
		return c.results[name]
	}
	if b := types.LookupBuiltin(name); b != nil {
		return b.Result
	}
	return nil
}
