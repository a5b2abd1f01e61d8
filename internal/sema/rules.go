package sema

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// Each rule inspects one node and returns a diagnostic and true when it
// finds a problem. Only redeclared modifies state, by inserting into the
// shared table.

var none diag.Diagnostic

// redeclared binds sym in table. If the name is already bound the table is
// left unchanged and a redeclaration is reported at pos.
func redeclared(table *types.Table, sym *types.Symbol, pos syntax.Pos) (diag.Diagnostic, bool) {
	prev := table.Insert(sym)
	if prev == nil {
		return none, false
	}
	return semf(pos, diag.CodeRedeclared, "%s redeclared (previous declaration at %d:%d)",
		sym.Name, prev.Line, prev.Col), true
}

// undefined reports a reference to a name that is not in table.
func undefined(table *types.Table, name *syntax.Name) (diag.Diagnostic, bool) {
	if table.Lookup(name.Value) != nil {
		return none, false
	}
	return semf(name.Pos(), diag.CodeUndefined, "undefined: %s", name.Value), true
}

// mismatch reports a value of type got used where want is required.
// Unknown types never mismatch.
func mismatch(context string, want, got *types.Basic, pos syntax.Pos) (diag.Diagnostic, bool) {
	if !types.IsKnown(want) || !types.IsKnown(got) || types.AssignableTo(got, want) {
		return none, false
	}
	return semf(pos, diag.CodeTypeMismatch, "type mismatch in %s: expected %s, got %s",
		context, want, got), true
}

// nonBoolCond reports an if condition whose type is known and not bool.
func nonBoolCond(cond syntax.Expr, t *types.Basic) (diag.Diagnostic, bool) {
	if !types.IsKnown(t) || t.Info()&types.IsBoolean != 0 {
		return none, false
	}
	return semf(cond.Pos(), diag.CodeNonBoolCond, "non-boolean condition in if statement: %s (type %s)",
		syntax.ExprString(cond), t), true
}

// unknownPackage reports a call through a receiver that is neither a
// builtin nor an imported package. It only fires in strict mode.
func unknownPackage(strict bool, packages mapset.Set, call *syntax.CallExpr) (diag.Diagnostic, bool) {
	if !strict || call.Receiver == nil || packages.Contains(call.Receiver.Value) {
		return none, false
	}
	return semf(call.Receiver.Pos(), diag.CodeUnknownPackage, "package %s is not imported",
		call.Receiver.Value), true
}

// undefinedFunc reports a bare call to a name that is neither a declared
// function nor a builtin.
func undefinedFunc(funcs, builtins mapset.Set, call *syntax.CallExpr) (diag.Diagnostic, bool) {
	if call.Receiver != nil {
		return none, false
	}
	name := call.Method.Value
	if funcs.Contains(name) || builtins.Contains(name) {
		return none, false
	}
	return semf(call.Method.Pos(), diag.CodeUndefinedFunc, "undefined function: %s", name), true
}

// returnMismatch checks a return statement against the result type of the
// enclosing function fn; got is the type of the returned value.
func returnMismatch(fn *syntax.FuncDecl, s *syntax.ReturnStmt, got *types.Basic) (diag.Diagnostic, bool) {
	if fn == nil {
		return semf(s.Pos(), diag.CodeReturnMismatch, "return statement outside function"), true
	}

	var want *types.Basic
	if fn.Result != nil {
		want = types.FromKeyword(fn.Result.Kind)
	}

	switch {
	case want == nil && s.Result != nil:
		return semf(s.Result.Pos(), diag.CodeReturnMismatch, "too many return values: %s has no result type",
			fn.Name.Value), true
	case want != nil && s.Result == nil:
		return semf(s.Pos(), diag.CodeReturnMismatch, "missing return value: %s returns %s",
			fn.Name.Value, want), true
	case want != nil:
		return mismatchCode(diag.CodeReturnMismatch, fmt.Sprintf("return from %s", fn.Name.Value), want, got, s.Result.Pos())
	}
	return none, false
}

// mismatchCode is mismatch reported under a different code.
func mismatchCode(code, context string, want, got *types.Basic, pos syntax.Pos) (diag.Diagnostic, bool) {
	d, ok := mismatch(context, want, got, pos)
	if ok {
		d.Code = code
	}
	return d, ok
}
