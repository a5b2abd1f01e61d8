package e2e

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/you-not-fish/golite/internal/pipeline"
	"github.com/you-not-fish/golite/internal/report"
)

var update = flag.Bool("update", false, "rewrite .golden files")

// TestE2E runs every .gl file in testdata/ through the full pipeline.
// Each test:
//  1. Lexes, parses and analyzes the source in-process
//  2. Renders the grouped text report and the symbol table
//  3. Compares the output against the .golden file
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.gl")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .gl test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".gl")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile)
		})
	}
}

func runE2ETest(t *testing.T, srcFile string) {
	t.Helper()

	src, err := os.ReadFile(srcFile)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	got := render(t, filepath.Base(srcFile), string(src))

	goldenFile := strings.TrimSuffix(srcFile, ".gl") + ".golden"
	if *update {
		if err := os.WriteFile(goldenFile, []byte(got), 0o644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}
	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// render produces the report compared against the golden file.
func render(t *testing.T, name, src string) string {
	t.Helper()

	res := pipeline.Run(name, src, pipeline.Options{})

	var buf bytes.Buffer
	if err := report.Text(&buf, res, report.Options{}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if res.Analyzed {
		buf.WriteString(res.Symbols.String())
	}
	return buf.String()
}

// TestE2EDeterministic checks that two runs over the same input render
// identically.
func TestE2EDeterministic(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.gl")
	if err != nil {
		t.Fatal(err)
	}
	for _, testFile := range testFiles {
		src, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatal(err)
		}
		first := render(t, testFile, string(src))
		second := render(t, testFile, string(src))
		if first != second {
			t.Errorf("%s: output differs between runs", testFile)
		}
	}
}
