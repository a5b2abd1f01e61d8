// Package types implements the type tags and the symbol table used by
// Go-lite semantic analysis. It does not depend on the AST.
package types

import "github.com/you-not-fish/golite/internal/syntax"

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // unknown or erroneous type

	Int
	Float64
	String
	Bool
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsBoolean BasicInfo = 1 << iota
	IsInteger
	IsFloat
	IsString
	IsNumeric = IsInteger | IsFloat
)

// Basic represents a basic type: int, float64, string or bool.
type Basic struct {
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String returns the type name; a nil *Basic prints as "unknown".
func (b *Basic) String() string {
	if b == nil {
		return "unknown"
	}
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
var Typ = []*Basic{
	Invalid: {kind: Invalid, name: "invalid"},
	Int:     {kind: Int, info: IsInteger, name: "int"},
	Float64: {kind: Float64, info: IsFloat, name: "float64"},
	String:  {kind: String, info: IsString, name: "string"},
	Bool:    {kind: Bool, info: IsBoolean, name: "bool"},
}

// Lookup returns the basic type named by a type keyword, or nil.
func Lookup(name string) *Basic {
	switch name {
	case "int":
		return Typ[Int]
	case "float64":
		return Typ[Float64]
	case "string":
		return Typ[String]
	case "bool":
		return Typ[Bool]
	}
	return nil
}

// FromKeyword returns the basic type for a type keyword token kind.
func FromKeyword(k syntax.Kind) *Basic {
	if !k.IsTypeKeyword() {
		return nil
	}
	return Lookup(k.String())
}

// FromLit returns the type of a literal of kind k.
func FromLit(k syntax.LitKind) *Basic {
	switch k {
	case syntax.IntLit:
		return Typ[Int]
	case syntax.FloatLit:
		return Typ[Float64]
	case syntax.StringLit:
		return Typ[String]
	case syntax.BoolLit:
		return Typ[Bool]
	}
	return nil
}
