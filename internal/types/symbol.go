package types

import "fmt"

// SymbolKind identifies how a name was bound.
type SymbolKind int

const (
	VarSym   SymbolKind = iota // var x T [= e]
	ShortSym                   // x := e
	ParamSym                   // function parameter
)

var symbolKindNames = [...]string{
	VarSym:   "var",
	ShortSym: "short",
	ParamSym: "param",
}

func (k SymbolKind) String() string {
	if k >= 0 && int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k SymbolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Symbol is one binding in a Table. Type is Invalid when the binding's
// initializer had no inferable type.
type Symbol struct {
	Name string
	Type *Basic
	Kind SymbolKind
	Line int
	Col  int
}

// NewSymbol returns a symbol declared at line:col. A nil typ is recorded
// as Invalid.
func NewSymbol(name string, typ *Basic, kind SymbolKind, line, col int) *Symbol {
	if typ == nil {
		typ = Typ[Invalid]
	}
	return &Symbol{Name: name, Type: typ, Kind: kind, Line: line, Col: col}
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s %s (%d:%d)", s.Kind, s.Name, s.Type, s.Line, s.Col)
}
