// Package syntax implements lexical and syntactic analysis for Go-lite.
package syntax

import (
	"fmt"
	"go/constant"
)

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Special tokens
	_EOF Kind = iota // end of input

	// Literals
	_Name    // identifier: x, fmt, Println
	_Literal // literal value (used with LitKind)

	// Assignment
	_Assign // =
	_Define // :=

	// Compound assignment
	_AddAssign    // +=
	_SubAssign    // -=
	_MulAssign    // *=
	_DivAssign    // /=
	_RemAssign    // %=
	_AndAssign    // &=
	_OrAssign     // |=
	_XorAssign    // ^=
	_ShlAssign    // <<=
	_ShrAssign    // >>=
	_AndNotAssign // &^=

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic operators (additive)
	_Add // +
	_Sub // -
	_Or  // |
	_Xor // ^

	// Arithmetic operators (multiplicative)
	_Mul    // *
	_Div    // /
	_Rem    // %
	_And    // &
	_AndNot // &^
	_Shl    // <<
	_Shr    // >>

	// Unary operators
	_Not // !

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Dot    // .

	// Keywords
	_Break
	_Case
	_Const
	_Continue
	_Default
	_Else
	_For
	_Func
	_Go
	_If
	_Import
	_Interface
	_Package
	_Return
	_Struct
	_Switch
	_Type
	_Var

	// Type keywords
	_Int
	_Float64
	_Bool
	_String

	kindCount
)

// kindNames maps kinds to their string representation.
var kindNames = [...]string{
	_EOF: "EOF",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",
	_Define: ":=",

	_AddAssign:    "+=",
	_SubAssign:    "-=",
	_MulAssign:    "*=",
	_DivAssign:    "/=",
	_RemAssign:    "%=",
	_AndAssign:    "&=",
	_OrAssign:     "|=",
	_XorAssign:    "^=",
	_ShlAssign:    "<<=",
	_ShrAssign:    ">>=",
	_AndNotAssign: "&^=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",
	_Or:  "|",
	_Xor: "^",

	_Mul:    "*",
	_Div:    "/",
	_Rem:    "%",
	_And:    "&",
	_AndNot: "&^",
	_Shl:    "<<",
	_Shr:    ">>",

	_Not: "!",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Dot:    ".",

	_Break:     "break",
	_Case:      "case",
	_Const:     "const",
	_Continue:  "continue",
	_Default:   "default",
	_Else:      "else",
	_For:       "for",
	_Func:      "func",
	_Go:        "go",
	_If:        "if",
	_Import:    "import",
	_Interface: "interface",
	_Package:   "package",
	_Return:    "return",
	_Struct:    "struct",
	_Switch:    "switch",
	_Type:      "type",
	_Var:       "var",

	_Int:     "int",
	_Float64: "float64",
	_Bool:    "bool",
	_String:  "string",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + - | ^
//	5: * / % & &^ << >>
func (k Kind) Precedence() int {
	switch k {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub, _Or, _Xor:
		return 4
	case _Mul, _Div, _Rem, _And, _AndNot, _Shl, _Shr:
		return 5
	}
	return 0
}

// IsRelational reports whether k is a comparison operator.
func (k Kind) IsRelational() bool {
	return k >= _Eql && k <= _Geq
}

// IsLogical reports whether k is && or ||.
func (k Kind) IsLogical() bool {
	return k == _OrOr || k == _AndAnd
}

// IsKeyword reports whether k is a reserved word, including type keywords.
func (k Kind) IsKeyword() bool {
	return k >= _Break && k <= _String
}

// IsTypeKeyword reports whether k names one of the basic types.
func (k Kind) IsTypeKeyword() bool {
	return k >= _Int && k <= _String
}

// IsOperator reports whether k is an operator token.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Not
}

// IsCompoundAssign reports whether k is one of the op= forms.
func (k Kind) IsCompoundAssign() bool {
	return k >= _AddAssign && k <= _AndNotAssign
}

// BinaryOp returns the binary operator underlying a compound assignment,
// e.g. _Add for +=. It returns k unchanged for any other kind.
func (k Kind) BinaryOp() Kind {
	switch k {
	case _AddAssign:
		return _Add
	case _SubAssign:
		return _Sub
	case _MulAssign:
		return _Mul
	case _DivAssign:
		return _Div
	case _RemAssign:
		return _Rem
	case _AndAssign:
		return _And
	case _OrAssign:
		return _Or
	case _XorAssign:
		return _Xor
	case _ShlAssign:
		return _Shl
	case _ShrAssign:
		return _Shr
	case _AndNotAssign:
		return _AndNot
	}
	return k
}

// Exported kinds for the semantic analyzer and reports.
const (
	EOF  Kind = _EOF
	Not  Kind = _Not // !
	Sub  Kind = _Sub // -
	Semi Kind = _Semi
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123
	FloatLit                 // 3.14, 1., .5, 1e10, 2.5e-3
	StringLit                // "hello", `raw`
	BoolLit                  // true, false
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	BoolLit:   "bool",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps reserved words to their kind. true and false are scanned
// as literals and do not appear here.
var keywords = map[string]Kind{
	"break":     _Break,
	"case":      _Case,
	"const":     _Const,
	"continue":  _Continue,
	"default":   _Default,
	"else":      _Else,
	"for":       _For,
	"func":      _Func,
	"go":        _Go,
	"if":        _If,
	"import":    _Import,
	"interface": _Interface,
	"package":   _Package,
	"return":    _Return,
	"struct":    _Struct,
	"switch":    _Switch,
	"type":      _Type,
	"var":       _Var,

	"int":     _Int,
	"float64": _Float64,
	"bool":    _Bool,
	"string":  _String,
}

// LookupKeyword returns the kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Name
}

// IsReserved reports whether name is a reserved word or boolean literal.
func IsReserved(name string) bool {
	if name == "true" || name == "false" {
		return true
	}
	_, ok := keywords[name]
	return ok
}

// Token is a single lexical token.
type Token struct {
	Kind    Kind
	Lit     string         // source spelling; decoded contents for strings
	LitKind LitKind        // only valid when Kind == _Literal
	Value   constant.Value // literal value, nil for non-literals
	Pos     Pos
}

// String formats the token for diagnostics and debugging.
func (t Token) String() string {
	switch t.Kind {
	case _Name:
		return fmt.Sprintf("NAME(%s)", t.Lit)
	case _Literal:
		if t.LitKind == StringLit {
			return fmt.Sprintf("LITERAL(%q)", t.Lit)
		}
		return fmt.Sprintf("LITERAL(%s)", t.Lit)
	case _Semi:
		if t.Lit == "newline" || t.Lit == "EOF" {
			return "; (" + t.Lit + ")"
		}
	}
	return t.Kind.String()
}
