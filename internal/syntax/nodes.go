package syntax

import "go/constant"

// ----------------------------------------------------------------------------
// Interfaces
//
// All nodes implement the Node interface. Expression, statement and
// declaration nodes further implement their respective interfaces. A VarDecl
// is both a declaration and a statement, since it may appear at top level or
// inside a block.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is the root of a parsed unit. Decls holds top-level declarations
// and statements in source order.
type Program struct {
	node
	Decls []Node
}

// PackageDecl represents: package Name
type PackageDecl struct {
	decl
	Name *Name
}

// ImportDecl represents: import "path"
type ImportDecl struct {
	decl
	Path *BasicLit // StringLit
}

// FuncDecl represents: func Name(Params) Result { Body }
type FuncDecl struct {
	decl
	Name   *Name
	Params []*Param
	Result *TypeName // nil for no result
	Body   []Stmt
}

// Param is a single named function parameter.
type Param struct {
	node
	Name *Name
	Type *TypeName
}

// VarDecl represents: var Name Type [= Init]
type VarDecl struct {
	decl
	Name *Name
	Type *TypeName
	Init Expr // nil if none
}

func (*VarDecl) aStmt() {}

// TypeName is a basic type keyword in a declaration. It is not an
// expression.
type TypeName struct {
	node
	Kind Kind   // _Int, _Float64, _Bool or _String
	Name string // keyword spelling
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt represents a lone ';'.
type EmptyStmt struct {
	stmt
}

// ExprStmt is an expression evaluated for its effect (a call).
type ExprStmt struct {
	stmt
	X Expr
}

// ShortDecl represents: Name := Init
type ShortDecl struct {
	stmt
	Name *Name
	Init Expr
}

// Assign represents: Name = X
type Assign struct {
	stmt
	Name *Name
	X    Expr
}

// CompoundAssign represents: Name op= X. Op is the underlying binary
// operator, e.g. _Add for +=.
type CompoundAssign struct {
	stmt
	Op   Kind
	Name *Name
	X    Expr
}

// IfStmt represents: if Cond { Then } else { Else }
// Else is nil when there is no else branch. "else if" is represented as an
// Else block holding a single IfStmt.
type IfStmt struct {
	stmt
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ReturnStmt represents: return [Result]
type ReturnStmt struct {
	stmt
	Result Expr // nil for a bare return
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents a literal of basic type.
type BasicLit struct {
	expr
	Value string         // literal spelling; decoded contents for strings
	Kind  LitKind        // IntLit, FloatLit, StringLit or BoolLit
	Val   constant.Value // constant value
}

// BinaryExpr represents: X Op Y
type BinaryExpr struct {
	expr
	Op Kind
	X  Expr
	Y  Expr
}

// UnaryExpr represents: Op X
type UnaryExpr struct {
	expr
	Op Kind // _Sub or _Not
	X  Expr
}

// CallExpr represents Receiver.Method(Args), or Method(Args) when Receiver
// is nil.
type CallExpr struct {
	expr
	Receiver *Name
	Method   *Name
	Args     []Expr
}

// Callee returns the call target as written, e.g. "fmt.Println".
func (c *CallExpr) Callee() string {
	if c.Receiver == nil {
		return c.Method.Value
	}
	return c.Receiver.Value + "." + c.Method.Value
}
