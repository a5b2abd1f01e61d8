package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// block prints a labeled statement list one level deeper.
func (p *printer) block(label string, list []Stmt) {
	p.printf("%s:\n", label)
	p.indent++
	for _, s := range list {
		p.print(s)
	}
	p.indent--
}

// child prints a labeled single child one level deeper.
func (p *printer) child(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *PackageDecl:
		p.printf("PackageDecl %s %s\n", n.Name.Value, n.pos)

	case *ImportDecl:
		p.printf("ImportDecl %q %s\n", n.Path.Value, n.pos)

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.Name.Value, n.pos)
		p.indent++
		for _, param := range n.Params {
			p.print(param)
		}
		if n.Result != nil {
			p.printf("Result: %s\n", n.Result.Name)
		}
		p.block("Body", n.Body)
		p.indent--

	case *Param:
		p.printf("Param %s %s %s\n", n.Name.Value, n.Type.Name, n.pos)

	case *VarDecl:
		p.printf("VarDecl %s %s %s\n", n.Name.Value, n.Type.Name, n.pos)
		if n.Init != nil {
			p.indent++
			p.child("Init", n.Init)
			p.indent--
		}

	case *TypeName:
		p.printf("TypeName %s %s\n", n.Name, n.pos)

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.pos)

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ShortDecl:
		p.printf("ShortDecl %s %s\n", n.Name.Value, n.pos)
		p.indent++
		p.print(n.Init)
		p.indent--

	case *Assign:
		p.printf("Assign %s %s\n", n.Name.Value, n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CompoundAssign:
		p.printf("CompoundAssign %s %s= %s\n", n.Name.Value, n.Op, n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.child("Cond", n.Cond)
		p.block("Then", n.Then)
		if n.Else != nil {
			p.block("Else", n.Else)
		}
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *Name:
		p.printf("Name %s %s\n", n.Value, n.pos)

	case *BasicLit:
		if n.Kind == StringLit {
			p.printf("BasicLit %s %q %s\n", n.Kind, n.Value, n.pos)
		} else {
			p.printf("BasicLit %s %s %s\n", n.Kind, n.Value, n.pos)
		}

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.Op, n.pos)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *UnaryExpr:
		p.printf("UnaryExpr %s %s\n", n.Op, n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.Callee(), n.pos)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	default:
		p.printf("%T %s\n", n, n.Pos())
	}
}

// ExprString returns a compact source-like form of e, used in diagnostics.
func ExprString(e Expr) string {
	switch x := e.(type) {
	case nil:
		return "<nil>"
	case *Name:
		return x.Value
	case *BasicLit:
		if x.Kind == StringLit {
			return fmt.Sprintf("%q", x.Value)
		}
		return x.Value
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(x.X), x.Op, ExprString(x.Y))
	case *UnaryExpr:
		return x.Op.String() + ExprString(x.X)
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = ExprString(a)
		}
		return x.Callee() + "(" + strings.Join(args, ", ") + ")"
	}
	return fmt.Sprintf("%T", e)
}
