package types

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a flat symbol table: one namespace for a whole analyzed unit,
// with no nesting per block or function.
type Table struct {
	elems map[string]*Symbol
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{elems: make(map[string]*Symbol)}
}

// Lookup returns the symbol bound to name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.elems[name]
}

// Insert binds sym.Name to sym.
// If the name is already bound, the table is left unchanged and the
// existing symbol is returned. Otherwise, returns nil.
func (t *Table) Insert(sym *Symbol) *Symbol {
	if existing := t.elems[sym.Name]; existing != nil {
		return existing
	}
	t.elems[sym.Name] = sym
	return nil
}

// Names returns the bound names, sorted alphabetically.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.elems))
	for name := range t.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Symbols returns the symbols sorted by name.
func (t *Table) Symbols() []Symbol {
	names := t.Names()
	syms := make([]Symbol, len(names))
	for i, name := range names {
		syms[i] = *t.elems[name]
	}
	return syms
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.elems)
}

// Snapshot returns a copy of the table mapping each name to its type name.
// Later changes to the table do not affect the snapshot.
func (t *Table) Snapshot() map[string]string {
	m := make(map[string]string, t.Len())
	for _, name := range t.Names() {
		m[name] = t.elems[name].Type.String()
	}
	return m
}

// String returns a string representation of the table for debugging.
func (t *Table) String() string {
	var buf strings.Builder
	buf.WriteString("table {\n")
	for _, name := range t.Names() {
		fmt.Fprintf(&buf, "  %s: %s\n", name, t.elems[name].Type)
	}
	buf.WriteString("}\n")
	return buf.String()
}
