package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/pipeline"
)

// Log stage names, used as file name prefixes.
const (
	LexicalLog  = "lexico"
	SyntaxLog   = "sintactico"
	SemanticLog = "semantico"
)

const stampLayout = "20060102-1504"

// LogWriter writes per-stage log files named
// <stage>-<user>-<YYYYMMDD-HHMM>.txt into Dir. Entries for runs in the
// same minute are appended to the same file.
type LogWriter struct {
	Dir  string
	User string
	Now  func() time.Time // defaults to time.Now
}

// Path returns the file that stage logs go to at the current time.
func (lw *LogWriter) Path(stage string) string {
	now := time.Now
	if lw.Now != nil {
		now = lw.Now
	}
	name := fmt.Sprintf("%s-%s-%s.txt", stage, lw.User, now().Format(stampLayout))
	return filepath.Join(lw.Dir, name)
}

// WriteAll writes the lexical, syntax and semantic logs for res and returns
// the paths written.
func (lw *LogWriter) WriteAll(res *pipeline.Result) ([]string, error) {
	var paths []string
	for _, f := range []func(*pipeline.Result) (string, error){lw.Lexical, lw.Syntax, lw.Semantic} {
		path, err := f(res)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Lexical writes the token listing and lexical diagnostics of res.
func (lw *LogWriter) Lexical(res *pipeline.Result) (string, error) {
	var b bytes.Buffer
	lw.header(&b, res)
	b.WriteString("\n--- TOKENS ---\n\n")
	if res.Tokens == nil {
		fmt.Fprintf(&b, "(%d tokens, not retained)\n", res.TokenCount)
	}
	for _, tok := range res.Tokens {
		fmt.Fprintf(&b, "%-15s line=%-4d col=%-6d value=%s\n",
			tok.Kind, tok.Pos.Line(), tok.Pos.Col(), Truncate(tok.Lit))
	}
	b.WriteString("\n--- LEXICAL ERRORS ---\n\n")
	writeList(&b, res.Lexical.Items())
	return lw.append(LexicalLog, b.Bytes())
}

// Syntax writes the parse outcome and syntax diagnostics of res.
func (lw *LogWriter) Syntax(res *pipeline.Result) (string, error) {
	var b bytes.Buffer
	lw.header(&b, res)
	outcome := "OK"
	if !res.ParseOK {
		outcome = "ERRORS"
	}
	fmt.Fprintf(&b, "\n--- PARSE ---\n\nResult: %s\n", outcome)
	b.WriteString("\n--- SYNTAX ERRORS ---\n\n")
	writeList(&b, res.Syntax.Items())
	return lw.append(SyntaxLog, b.Bytes())
}

// Semantic writes the semantic diagnostics and symbol table of res.
func (lw *LogWriter) Semantic(res *pipeline.Result) (string, error) {
	var b bytes.Buffer
	lw.header(&b, res)
	b.WriteString("\n")
	switch {
	case !res.Analyzed:
		b.WriteString("Semantic analysis skipped after syntax errors.\n")
	case res.Semantic.Len() == 0:
		b.WriteString("No semantic errors found.\n")
	default:
		b.WriteString("Semantic errors found:\n")
		for _, d := range res.Semantic.Items() {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	if res.Analyzed {
		b.WriteString("\n--- SYMBOLS ---\n\n")
		Symbols(&b, res.Symbols)
	}
	return lw.append(SemanticLog, b.Bytes())
}

func (lw *LogWriter) header(b *bytes.Buffer, res *pipeline.Result) {
	fmt.Fprintf(b, "File: %s\n", res.Name)
	fmt.Fprintf(b, "User: %s\n", lw.User)
	fmt.Fprintf(b, "Run: %s\n", res.RunID)
}

func writeList(b *bytes.Buffer, items []diag.Diagnostic) {
	if len(items) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, d := range items {
		fmt.Fprintf(b, "%s\n", d)
	}
}

func (lw *LogWriter) append(stage string, data []byte) (string, error) {
	if err := os.MkdirAll(lw.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	path := lw.Path(stage)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write log %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close log %s: %w", path, err)
	}
	return path, nil
}
