package sema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// parse parses src and fails the test on syntax errors.
func parse(t *testing.T, src string) *syntax.Program {
	t.Helper()
	res := syntax.Parse(syntax.Tokenize(src, nil))
	require.True(t, res.OK, "syntax errors:\n%s", res.Diagnostics.String())
	return res.File
}

// check parses and analyzes src with conf.
func check(t *testing.T, src string, conf *Config) (diag.List, *types.Table) {
	t.Helper()
	return Analyze(parse(t, src), conf)
}

// expectNoErrors checks that src analyzes without diagnostics.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	diags, _ := check(t, src, nil)
	if diags.Len() > 0 {
		t.Errorf("unexpected diagnostics:\n%s", diags.String())
	}
}

// expectCodes checks that src yields exactly the given diagnostic codes,
// in order.
func expectCodes(t *testing.T, src string, conf *Config, codes ...string) diag.List {
	t.Helper()
	diags, _ := check(t, src, conf)
	var got []string
	for _, d := range diags.Items() {
		got = append(got, d.Code)
	}
	if diff := cmp.Diff(codes, got); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s\ndiagnostics:\n%s", diff, diags.String())
	}
	return diags
}

// ----------------------------------------------------------------------------
// Scenarios

func TestScenarioVarDecl(t *testing.T) {
	diags, table := check(t, "var x int = 5;", nil)
	assert.Zero(t, diags.Len(), diags.String())
	assert.Equal(t, map[string]string{"x": "int"}, table.Snapshot())
}

func TestScenarioRedeclaration(t *testing.T) {
	diags, table := check(t, "x := 5; x := 6;", nil)

	want := []diag.Diagnostic{{
		Severity: diag.Semantic,
		Code:     diag.CodeRedeclared,
		Msg:      "x redeclared (previous declaration at 1:1)",
		Line:     1,
		Col:      9,
	}}
	if diff := cmp.Diff(want, diags.Items()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	sym := table.Lookup("x")
	require.NotNil(t, sym)
	assert.Equal(t, types.Typ[types.Int], sym.Type)
	assert.Equal(t, 1, sym.Col, "first declaration is kept")
}

func TestScenarioUndefinedInCall(t *testing.T) {
	diags, _ := check(t, "fmt.Println(y);", nil)

	want := []diag.Diagnostic{{
		Severity: diag.Semantic,
		Code:     diag.CodeUndefined,
		Msg:      "undefined: y",
		Line:     1,
		Col:      13,
	}}
	if diff := cmp.Diff(want, diags.Items()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioNonBoolCondition(t *testing.T) {
	diags, _ := check(t, "if 1+1 { }", nil)

	want := []diag.Diagnostic{{
		Severity: diag.Semantic,
		Code:     diag.CodeNonBoolCond,
		Msg:      "non-boolean condition in if statement: (1 + 1) (type int)",
		Line:     1,
		Col:      4,
	}}
	if diff := cmp.Diff(want, diags.Items()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioTypeMismatch(t *testing.T) {
	diags, table := check(t, "var s string = 10;", nil)

	want := []diag.Diagnostic{{
		Severity: diag.Semantic,
		Code:     diag.CodeTypeMismatch,
		Msg:      "type mismatch in declaration of s: expected string, got int",
		Line:     1,
		Col:      16,
	}}
	if diff := cmp.Diff(want, diags.Items()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	// The declared type is recorded regardless.
	assert.Equal(t, "string", table.Snapshot()["s"])
}

// ----------------------------------------------------------------------------
// Redeclaration and undefined names

func TestRedeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int // number of redeclaration diagnostics
	}{
		{"var then var", "var x int\nvar x string", 1},
		{"var then short", "var x int\nx := 2", 1},
		{"short then var", "x := 1\nvar x bool", 1},
		{"inside block", "x := 1\nif true { x := 2 }", 1},
		{"three times", "x := 1\nx := 2\nx := 3", 2},
		{"param and local", "func f(a int) { a := 2 }", 1},
		{"params of two functions", "func f(a int) { }\nfunc g(a int) { }", 1},
		{"distinct names", "x := 1\ny := 2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, _ := check(t, tt.src, nil)
			assert.Equal(t, tt.want, diags.CountCode(diag.CodeRedeclared), diags.String())
			assert.Equal(t, tt.want, diags.Len(), diags.String())
		})
	}
}

func TestRedeclarationKeepsFirstType(t *testing.T) {
	_, table := check(t, "var v float64\nv := \"s\"\nvar v bool", nil)
	assert.Equal(t, types.Typ[types.Float64], table.Lookup("v").Type)
	assert.Equal(t, types.VarSym, table.Lookup("v").Kind)
}

func TestUndefinedEveryOccurrence(t *testing.T) {
	diags := expectCodes(t, "x := y + y\nfmt.Println(y)\nz = 1", nil,
		diag.CodeUndefined, diag.CodeUndefined, diag.CodeUndefined, diag.CodeUndefined)

	var lines []int
	for _, d := range diags.Items() {
		lines = append(lines, d.Line)
	}
	assert.Equal(t, []int{1, 1, 2, 3}, lines)
	assert.Equal(t, "undefined: z", diags.At(3).Msg)
}

func TestSelfReference(t *testing.T) {
	// The initializer is checked before the name is bound.
	diags, table := check(t, "x := x + 1", nil)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeUndefined, diags.At(0).Code)
	assert.Equal(t, 6, diags.At(0).Col)

	assert.Equal(t, "invalid", table.Snapshot()["x"])
}

func TestUseBeforeDeclaration(t *testing.T) {
	expectCodes(t, "y := x\nx := 1\nz := x", nil, diag.CodeUndefined)
}

func TestNamesNotReferences(t *testing.T) {
	// Declared names, function names, parameters and package receivers are
	// not identifier references.
	expectNoErrors(t, `package main
import "fmt"
func add(a int, b int) int { return a + b }
var total int = add(1, 2)
fmt.Println(total)
`)
}

// ----------------------------------------------------------------------------
// Type compatibility

func TestTypeCompatibility(t *testing.T) {
	tests := []struct {
		src      string
		mismatch bool
	}{
		{"var i int = 1", false},
		{"var i int = 1.5", true},
		{"var f float64 = 1", false},
		{"var f float64 = 1 + 2.5", false},
		{"var i int = 1 + 2.5", true},
		{"var b bool = 1 < 2", false},
		{"var b bool = 1", true},
		{"var b bool = !true", false},
		{"var b bool = true && 1 == 1", false},
		{`var s string = "a" + "b"`, false},
		{`var s string = "a"`, false},
		{`var i int = "a"`, true},
		{"var i int = -5", false},
		{"var f float64 = 2\nvar i int = f", true},
		{"var i int = len(\"abc\")", false},
		{"var s string = fmt.Sprint(1)", false},
		{"func half() float64 { return 0.5 }\nvar i int = half()", true},
		{"func one() int { return 1 }\nvar f float64 = one()", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			diags, _ := check(t, tt.src, nil)
			got := diags.CountCode(diag.CodeTypeMismatch)
			if tt.mismatch {
				assert.Equal(t, 1, got, diags.String())
			} else {
				assert.Zero(t, got, diags.String())
			}
		})
	}
}

func TestTypeMismatchSuppressedWhenUnknown(t *testing.T) {
	// The undefined name is reported; the unknown type causes nothing more.
	expectCodes(t, "var i int = q * 2", nil, diag.CodeUndefined)
	expectCodes(t, "x := q\nvar s string = x", nil, diag.CodeUndefined)
}

func TestAssignmentCompatibility(t *testing.T) {
	tests := []struct {
		src   string
		codes []string
	}{
		{"x := 1\nx = 2", nil},
		{"x := 1\nx = \"s\"", []string{diag.CodeTypeMismatch}},
		{"var f float64\nf = 1", nil},
		{"x := 1\nx += 1", nil},
		{"x := 1\nx += 1.5", []string{diag.CodeTypeMismatch}},
		{"s := \"a\"\ns += \"b\"", nil},
		{"f := 1.5\nf *= 2", nil},
		{"b := true\nb = 1 < 2", nil},
		{"q = 1", []string{diag.CodeUndefined}},
		{"q += 1", []string{diag.CodeUndefined}},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.src, "\n", "; "), func(t *testing.T) {
			expectCodes(t, tt.src, nil, tt.codes...)
		})
	}
}

func TestAssignmentMismatchMessage(t *testing.T) {
	diags, _ := check(t, "n := 1\nn += 0.5", nil)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "type mismatch in n +=: expected int, got float64", diags.At(0).Msg)
}

// ----------------------------------------------------------------------------
// Conditions

func TestConditions(t *testing.T) {
	tests := []struct {
		src   string
		codes []string
	}{
		{"if true { }", nil},
		{"if 1 < 2 { }", nil},
		{"b := true\nif b && 1 < 2 { }", nil},
		{"if !false { }", nil},
		{`if "s" { }`, []string{diag.CodeNonBoolCond}},
		{"if -1 { }", []string{diag.CodeNonBoolCond}},
		{"if 1.5 * 2 { }", []string{diag.CodeNonBoolCond}},
		{"if q { }", []string{diag.CodeUndefined}},
		{"if true { } else if 3 { }", []string{diag.CodeNonBoolCond}},
		{"if 1 { if 2 { } }", []string{diag.CodeNonBoolCond, diag.CodeNonBoolCond}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectCodes(t, tt.src, nil, tt.codes...)
		})
	}
}

func TestConditionBodiesChecked(t *testing.T) {
	expectCodes(t, "if true {\n\ta := q\n} else {\n\tb := r\n}", nil, diag.CodeUndefined, diag.CodeUndefined)
}

// ----------------------------------------------------------------------------
// Imports and calls

func TestImports(t *testing.T) {
	strict := &Config{StrictImports: true}
	noBuiltins := &Config{StrictImports: true, BuiltinPackages: []string{}}

	tests := []struct {
		name  string
		src   string
		conf  *Config
		codes []string
	}{
		{"lenient unknown receiver", "os.Exit(1)", nil, nil},
		{"strict unknown receiver", "os.Exit(1)", strict, []string{diag.CodeUnknownPackage}},
		{"strict imported", "import \"os\"\nos.Exit(1)", strict, nil},
		{"strict nested path", "import \"net/http\"\nhttp.Get(1)", strict, nil},
		{"strict builtin package", "fmt.Println(1)", strict, nil},
		{"strict no builtins", "fmt.Println(1)", noBuiltins, []string{diag.CodeUnknownPackage}},
		{"strict use before import", "os.Exit(1)\nimport \"os\"", strict, []string{diag.CodeUnknownPackage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCodes(t, tt.src, tt.conf, tt.codes...)
		})
	}
}

func TestUndefinedFunction(t *testing.T) {
	tests := []struct {
		src   string
		codes []string
	}{
		{"println(1)", nil},
		{"print(1, 2)", nil},
		{"n := len(\"s\")", nil},
		{"foo(1)", []string{diag.CodeUndefinedFunc}},
		{"func foo() { }\nfoo()", nil},
		{"foo()\nfunc foo() { }", nil},
		{"x := 1\nx()", []string{diag.CodeUndefinedFunc}},
		{"foo(q)", []string{diag.CodeUndefinedFunc, diag.CodeUndefined}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectCodes(t, tt.src, nil, tt.codes...)
		})
	}
}

func TestFunctionRedeclared(t *testing.T) {
	diags := expectCodes(t, "func f() int { return 1 }\nfunc f() string { return \"s\" }\nvar i int = f()", nil,
		diag.CodeRedeclared)
	assert.Equal(t, 2, diags.At(0).Line)
}

// ----------------------------------------------------------------------------
// Returns

func TestReturn(t *testing.T) {
	tests := []struct {
		src   string
		codes []string
	}{
		{"func f() int { return 1 }", nil},
		{"func f() float64 { return 1 }", nil},
		{"func f() { return }", nil},
		{"func f(a int) bool { return a > 0 }", nil},
		{`func f() int { return "s" }`, []string{diag.CodeReturnMismatch}},
		{"func f() { return 1 }", []string{diag.CodeReturnMismatch}},
		{"func f() int { return }", []string{diag.CodeReturnMismatch}},
		{"return 1", []string{diag.CodeReturnMismatch}},
		{"func f() int { return q }", []string{diag.CodeUndefined}},
		{"func f() int { if true { return 1 } else { return 2.5 } }", []string{diag.CodeReturnMismatch}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectCodes(t, tt.src, nil, tt.codes...)
		})
	}
}

// ----------------------------------------------------------------------------
// Inference

func TestInference(t *testing.T) {
	src := `a := 1 + 2.5
b := 2.5 * 2
c := 1 < 2
d := -3
e := !true
f := "x" + "y"
g := 7 % 2
h := 1 << 3
i := len("abc")
j := fmt.Sprint(1)
k := a
func m() bool { return true }
l := m()
`
	diags, table := check(t, src, nil)
	require.Zero(t, diags.Len(), diags.String())

	want := map[string]string{
		"a": "float64",
		"b": "float64",
		"c": "bool",
		"d": "int",
		"e": "bool",
		"f": "string",
		"g": "int",
		"h": "int",
		"i": "int",
		"j": "invalid",
		"k": "float64",
		"l": "bool",
	}
	if diff := cmp.Diff(want, table.Snapshot()); diff != "" {
		t.Errorf("symbol types mismatch (-want +got):\n%s", diff)
	}
}

func TestParamsInTable(t *testing.T) {
	_, table := check(t, "func f(a int, b string) { }", nil)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, types.ParamSym, table.Lookup("a").Kind)
	assert.Equal(t, types.Typ[types.String], table.Lookup("b").Type)
	assert.Equal(t, 8, table.Lookup("a").Col)
}

// ----------------------------------------------------------------------------
// Fault isolation and custom rules

func TestInternalFaultDowngraded(t *testing.T) {
	conf := &Config{Rules: []Rule{
		func(n syntax.Node, _ *types.Table) (diag.Diagnostic, bool) {
			if _, ok := n.(*syntax.BasicLit); ok {
				panic("boom")
			}
			return diag.Diagnostic{}, false
		},
	}}

	diags, _ := check(t, "x := 1\ny := z\nif 2 { }", conf)

	assert.Equal(t, 2, diags.Count(diag.Internal), diags.String())
	assert.Equal(t, 1, diags.CountCode(diag.CodeUndefined))
	assert.Equal(t, 1, diags.CountCode(diag.CodeNonBoolCond))

	first := diags.At(0)
	assert.Equal(t, diag.Internal, first.Severity)
	assert.Equal(t, diag.CodeInternal, first.Code)
	assert.Contains(t, first.Msg, "boom")
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 6, first.Col)
}

func TestCustomRule(t *testing.T) {
	noShadowFmt := func(n syntax.Node, table *types.Table) (diag.Diagnostic, bool) {
		sd, ok := n.(*syntax.ShortDecl)
		if !ok || sd.Name.Value != "fmt" {
			return diag.Diagnostic{}, false
		}
		return diag.Newf(diag.Semantic, "shadow", int(sd.Pos().Line()), int(sd.Pos().Col()), "fmt shadowed"), true
	}

	diags, _ := check(t, "x := 1\nfmt := 2", &Config{Rules: []Rule{noShadowFmt}})
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "shadow", diags.At(0).Code)
	assert.Equal(t, 2, diags.At(0).Line)
}

// ----------------------------------------------------------------------------
// Lifecycle

func TestAnalyzerReuse(t *testing.T) {
	a := New(nil)

	d1 := a.Analyze(parse(t, "x := 1\nx := 2"))
	assert.Equal(t, 1, d1.Len())
	assert.Equal(t, 1, a.Symbols().Len())

	// A second run neither sees the first run's symbols nor its diagnostics.
	d2 := a.Analyze(parse(t, "y := x"))
	require.Equal(t, 1, d2.Len())
	assert.Equal(t, diag.CodeUndefined, d2.At(0).Code)
	assert.Nil(t, a.Symbols().Lookup("x"))
	assert.NotNil(t, a.Symbols().Lookup("y"))

	// The first result is unaffected.
	assert.Equal(t, 1, d1.Len())
}

func TestAnalyzeNil(t *testing.T) {
	diags, table := Analyze(nil, nil)
	assert.Zero(t, diags.Len())
	require.NotNil(t, table)
	assert.Zero(t, table.Len())

	assert.NotNil(t, New(nil).Symbols())
}

func TestAnalyzeDoesNotModifyTree(t *testing.T) {
	prog := parse(t, "var x int = 5\nif x + 1 { y := q }\nfunc f(a int) int { return a }")

	var before, after bytes.Buffer
	syntax.Fprint(&before, prog)
	Analyze(prog, nil)
	syntax.Fprint(&after, prog)
	assert.Equal(t, before.String(), after.String())
}

func TestAnalyzePartialTree(t *testing.T) {
	res := syntax.Parse(syntax.Tokenize("x := ;\ny := q\nz := (\n", nil))
	require.False(t, res.OK)

	var diags diag.List
	assert.NotPanics(t, func() { diags, _ = Analyze(res.File, nil) })
	assert.Equal(t, 1, diags.CountCode(diag.CodeUndefined))
}

func TestAnalyzeDeterministic(t *testing.T) {
	src := "x := 1\nx := 2\ny := q + r\nif x { }\nvar s string = 3"
	prog := parse(t, src)

	d1, t1 := Analyze(prog, nil)
	d2, t2 := Analyze(prog, nil)
	if diff := cmp.Diff(d1.Items(), d2.Items()); diff != "" {
		t.Errorf("diagnostics differ between runs:\n%s", diff)
	}
	assert.Equal(t, t1.Snapshot(), t2.Snapshot())
}
