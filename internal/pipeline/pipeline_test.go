package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/sema"
	"github.com/you-not-fish/golite/internal/syntax"
)

func TestRunClean(t *testing.T) {
	res := Run("clean.go", "var x int = 5;", Options{KeepTokens: true})

	assert.True(t, res.OK())
	assert.True(t, res.ParseOK)
	assert.True(t, res.Analyzed)
	assert.Equal(t, "clean.go", res.Name)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, map[string]string{"x": "int"}, res.Symbols.Snapshot())

	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, syntax.EOF, res.Tokens[len(res.Tokens)-1].Kind)
}

func TestRunIllegalCharacter(t *testing.T) {
	res := Run("at.go", "x := 1 @ 2", Options{KeepTokens: true})

	require.Equal(t, 1, res.Lexical.Len())
	d := res.Lexical.At(0)
	assert.Equal(t, diag.Lexical, d.Severity)
	assert.Equal(t, diag.CodeIllegalChar, d.Code)
	assert.Equal(t, 8, d.Col)

	// Tokens on both sides of '@' are still produced.
	var lits []string
	for _, tok := range res.Tokens {
		if tok.Kind != syntax.EOF && tok.Kind != syntax.Semi {
			lits = append(lits, tok.Lit)
		}
	}
	assert.Equal(t, []string{"x", ":=", "1", "2"}, lits)
}

func TestRunDoesNotKeepTokens(t *testing.T) {
	res := Run("lazy.go", "x := 1\ny := x\n", Options{})
	assert.True(t, res.OK())
	assert.Nil(t, res.Tokens)
	// x := 1 ; y := x ; EOF
	assert.Equal(t, 9, res.TokenCount)

	kept := Run("lazy.go", "x := 1\ny := x\n", Options{KeepTokens: true})
	assert.Len(t, kept.Tokens, kept.TokenCount)
}

func TestRunScansPastErrorLimit(t *testing.T) {
	src := "x := ;\nx := ;\nx := ;\n@\n"
	res := Run("limit.go", src, Options{MaxSyntaxErrors: 1, KeepTokens: true})
	assert.Equal(t, 1, res.Syntax.CountCode(diag.CodeTooManyErrors))
	assert.Equal(t, 1, res.Lexical.CountCode(diag.CodeIllegalChar), "input after the abort is still scanned")
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, syntax.EOF, res.Tokens[len(res.Tokens)-1].Kind)
}

func TestRunSkipsAnalysisAfterSyntaxError(t *testing.T) {
	src := "x := ;\ny := q\n"

	res := Run("bad.go", src, Options{})
	assert.False(t, res.ParseOK)
	assert.False(t, res.Analyzed)
	assert.Nil(t, res.Symbols)
	assert.Zero(t, res.Semantic.Len())
	assert.Equal(t, 1, res.Syntax.Len())

	res = Run("bad.go", src, Options{AnalyzeOnSyntaxError: true})
	assert.True(t, res.Analyzed)
	assert.Equal(t, 1, res.Semantic.CountCode(diag.CodeUndefined))
}

func TestRunMaxSyntaxErrors(t *testing.T) {
	src := "x := ;\nx := ;\nx := ;\nx := ;\n"
	res := Run("many.go", src, Options{MaxSyntaxErrors: 2})
	assert.Equal(t, 3, res.Syntax.Len())
	assert.Equal(t, 1, res.Syntax.CountCode(diag.CodeTooManyErrors))
}

func TestRunNoASI(t *testing.T) {
	src := "x := 1\ny := 2\n"
	assert.True(t, Run("asi.go", src, Options{}).ParseOK)

	res := Run("noasi.go", src, Options{NoASI: true})
	assert.False(t, res.ParseOK)

	res = Run("explicit.go", "x := 1;\ny := 2;\n", Options{NoASI: true})
	assert.True(t, res.ParseOK, res.Syntax.String())
}

func TestRunSemaConfig(t *testing.T) {
	res := Run("strict.go", "os.Exit(1)", Options{Sema: sema.Config{StrictImports: true}})
	assert.Equal(t, 1, res.Semantic.CountCode(diag.CodeUnknownPackage))
}

func TestDiagnosticsGroupedByStage(t *testing.T) {
	res := Run("mixed.go", "x := 1 @\nif x + 1 { }\n", Options{})
	all := res.Diagnostics()
	require.Equal(t, 2, all.Len(), all.String())
	assert.Equal(t, diag.Lexical, all.At(0).Severity)
	assert.Equal(t, diag.Semantic, all.At(1).Severity)
	assert.False(t, res.OK())
}

func TestRunIsolation(t *testing.T) {
	r1 := Run("a.go", "x := 1", Options{})
	r2 := Run("b.go", "y := x", Options{})

	assert.NotEqual(t, r1.RunID, r2.RunID)
	assert.Equal(t, 1, r2.Semantic.CountCode(diag.CodeUndefined), "second run must not see x")
	assert.Nil(t, r2.Symbols.Lookup("x"))
}

func TestRunAll(t *testing.T) {
	var srcs []Source
	for i := 0; i < 20; i++ {
		// Every odd source references a name it never declares.
		text := fmt.Sprintf("v%d := %d", i, i)
		if i%2 == 1 {
			text = fmt.Sprintf("v%d := missing", i)
		}
		srcs = append(srcs, Source{Name: fmt.Sprintf("f%d.go", i), Text: text})
	}

	results, err := RunAll(context.Background(), srcs, Options{}, 4)
	require.NoError(t, err)
	require.Len(t, results, len(srcs))

	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, srcs[i].Name, res.Name, "results keep input order")
		assert.Equal(t, 1, res.Symbols.Len())
		assert.NotNil(t, res.Symbols.Lookup(fmt.Sprintf("v%d", i)))
		if i%2 == 1 {
			assert.Equal(t, 1, res.Semantic.Len())
		} else {
			assert.True(t, res.OK())
		}
	}
}

func TestRunAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srcs := []Source{{Name: "a.go", Text: "x := 1"}, {Name: "b.go", Text: "y := 2"}}
	results, err := RunAll(ctx, srcs, Options{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 2)
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("x := 1\n"), 0o644))

	srcs, err := ReadSources([]string{path})
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, path, srcs[0].Name)
	assert.Equal(t, "x := 1\n", srcs[0].Text)

	_, err = ReadSources([]string{filepath.Join(dir, "missing.go")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
