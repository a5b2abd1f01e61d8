package sema

import (
	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// Nothing to check

	case *syntax.ExprStmt:
		c.expr(s.X)

	case *syntax.VarDecl:
		c.varDecl(s)

	case *syntax.ShortDecl:
		c.shortDecl(s)

	case *syntax.Assign:
		c.assign(s)

	case *syntax.CompoundAssign:
		c.compoundAssign(s)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	default:
		c.diags.Report(internalf(s, "unexpected statement %T", s))
		return
	}
	c.custom(s)
}

// assign checks: Name = X
func (c *Checker) assign(s *syntax.Assign) {
	c.apply("undefined", s.Name, func() (diag.Diagnostic, bool) {
		return undefined(c.table, s.Name)
	})
	c.expr(s.X)

	c.apply("type compatibility", s, func() (diag.Diagnostic, bool) {
		sym := c.table.Lookup(s.Name.Value)
		if sym == nil {
			return none, false
		}
		return mismatch("assignment to "+s.Name.Value, sym.Type, c.typeOf(s.X), s.X.Pos())
	})
}

// compoundAssign checks: Name op= X
// The combined value Name op X must still fit Name's type.
func (c *Checker) compoundAssign(s *syntax.CompoundAssign) {
	c.apply("undefined", s.Name, func() (diag.Diagnostic, bool) {
		return undefined(c.table, s.Name)
	})
	c.expr(s.X)

	c.apply("type compatibility", s, func() (diag.Diagnostic, bool) {
		sym := c.table.Lookup(s.Name.Value)
		if sym == nil {
			return none, false
		}
		result := c.binaryType(s.Op, sym.Type, c.typeOf(s.X))
		return mismatch(s.Name.Value+" "+s.Op.String()+"=", sym.Type, result, s.X.Pos())
	})
}

// ifStmt checks an if statement.
func (c *Checker) ifStmt(s *syntax.IfStmt) {
	c.expr(s.Cond)
	c.apply("boolean condition", s, func() (diag.Diagnostic, bool) {
		return nonBoolCond(s.Cond, c.typeOf(s.Cond))
	})

	c.stmts(s.Then)
	c.stmts(s.Else)
}

// returnStmt checks a return statement against the enclosing function.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	if s.Result != nil {
		c.expr(s.Result)
	}
	c.apply("return type", s, func() (diag.Diagnostic, bool) {
		var got *types.Basic
		if s.Result != nil {
			got = c.typeOf(s.Result)
		}
		return returnMismatch(c.fn, s, got)
	})
}
