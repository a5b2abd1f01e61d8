package sema

import (
	"strings"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// collectFuncs registers every top-level function and its result type.
// Functions live in their own namespace, separate from the symbol table.
func (c *Checker) collectFuncs(decls []syntax.Node) {
	for _, n := range decls {
		fd, ok := n.(*syntax.FuncDecl)
		if !ok {
			continue
		}
		c.apply("function redeclaration", fd, func() (diag.Diagnostic, bool) {
			return c.declareFunc(fd)
		})
	}
}

// declareFunc registers fd. A second function with the same name is
// reported and the first declaration is kept.
func (c *Checker) declareFunc(fd *syntax.FuncDecl) (diag.Diagnostic, bool) {
	name := fd.Name.Value
	if !c.funcs.Add(name) {
		return semf(fd.Name.Pos(), diag.CodeRedeclared, "function %s redeclared", name), true
	}
	if fd.Result != nil {
		c.results[name] = types.FromKeyword(fd.Result.Kind)
	}
	return none, false
}

// packageName returns the name an import path binds: its last element.
func packageName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
