package sema

import (
	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// decl checks a top-level declaration or statement.
func (c *Checker) decl(n syntax.Node) {
	switch d := n.(type) {
	case *syntax.PackageDecl:
		c.custom(d)

	case *syntax.ImportDecl:
		c.importDecl(d)

	case *syntax.FuncDecl:
		c.funcDecl(d)

	case syntax.Stmt:
		c.stmt(d)

	default:
		c.diags.Report(internalf(n, "unexpected declaration %T", n))
	}
}

// importDecl registers the imported package name.
func (c *Checker) importDecl(d *syntax.ImportDecl) {
	c.packages.Add(packageName(d.Path.Value))
	c.custom(d)
}

// funcDecl checks a function declaration. Parameters are bound in the
// flat table like any other declaration.
func (c *Checker) funcDecl(d *syntax.FuncDecl) {
	prev := c.fn
	c.fn = d
	defer func() { c.fn = prev }()

	for _, p := range d.Params {
		c.param(p)
	}
	c.custom(d)
	c.stmts(d.Body)
}

func (c *Checker) param(p *syntax.Param) {
	sym := types.NewSymbol(p.Name.Value, types.FromKeyword(p.Type.Kind), types.ParamSym,
		int(p.Pos().Line()), int(p.Pos().Col()))
	c.apply("redeclaration", p, func() (diag.Diagnostic, bool) {
		return redeclared(c.table, sym, p.Name.Pos())
	})
}

// varDecl checks: var Name Type [= Init]
// The initializer is visited before the name is bound.
func (c *Checker) varDecl(d *syntax.VarDecl) {
	var got *types.Basic
	if d.Init != nil {
		c.expr(d.Init)
		got = c.inferGuarded(d.Init)
	}

	name := d.Name.Value
	want := types.FromKeyword(d.Type.Kind)
	sym := types.NewSymbol(name, want, types.VarSym, int(d.Pos().Line()), int(d.Pos().Col()))
	c.apply("redeclaration", d, func() (diag.Diagnostic, bool) {
		return redeclared(c.table, sym, d.Name.Pos())
	})

	if d.Init != nil {
		c.apply("type compatibility", d, func() (diag.Diagnostic, bool) {
			return mismatch("declaration of "+name, want, got, d.Init.Pos())
		})
	}
}

// shortDecl checks: Name := Init
// The name takes the initializer's inferred type, or Invalid if unknown.
func (c *Checker) shortDecl(s *syntax.ShortDecl) {
	c.expr(s.Init)

	t := c.inferGuarded(s.Init)

	sym := types.NewSymbol(s.Name.Value, t, types.ShortSym, int(s.Pos().Line()), int(s.Pos().Col()))
	c.apply("redeclaration", s, func() (diag.Diagnostic, bool) {
		return redeclared(c.table, sym, s.Name.Pos())
	})
}

// inferGuarded is typeOf run as a rule: a fault while inferring is reported
// and the type is treated as unknown.
func (c *Checker) inferGuarded(e syntax.Expr) (t *types.Basic) {
	c.apply("inference", e, func() (diag.Diagnostic, bool) {
		t = c.typeOf(e)
		return none, false
	})
	return t
}
