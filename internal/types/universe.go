package types

// Builtin describes a predeclared function callable without a receiver.
type Builtin struct {
	Name   string
	Result *Basic // nil if the builtin produces no value
}

var universe = map[string]*Builtin{
	"println": {Name: "println"},
	"print":   {Name: "print"},
	"len":     {Name: "len", Result: Typ[Int]},
}

// LookupBuiltin returns the builtin function with the given name, or nil.
func LookupBuiltin(name string) *Builtin {
	return universe[name]
}

// BuiltinNames returns the names of all builtin functions in a fixed order.
func BuiltinNames() []string {
	return []string{"len", "print", "println"}
}
