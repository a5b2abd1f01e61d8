package sema

import (
	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
)

// semf builds a Semantic diagnostic at pos.
func semf(pos syntax.Pos, code, format string, args ...interface{}) diag.Diagnostic {
	return diag.Newf(diag.Semantic, code, int(pos.Line()), int(pos.Col()), format, args...)
}

// internalf builds an Internal diagnostic at the position of n, if any.
func internalf(n syntax.Node, format string, args ...interface{}) diag.Diagnostic {
	var pos syntax.Pos
	if n != nil {
		pos = n.Pos()
	}
	return diag.Newf(diag.Internal, diag.CodeInternal, int(pos.Line()), int(pos.Col()), format, args...)
}
