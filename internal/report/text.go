// Package report renders pipeline results for people and tools: grouped
// text, token and symbol tables, JSON and YAML run reports, and the
// timestamped per-stage log files.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/you-not-fish/golite/internal/diag"
	"github.com/you-not-fish/golite/internal/pipeline"
)

// Options controls text rendering.
type Options struct {
	Color bool // colorize severity tags
}

// AutoColor reports whether w is a terminal that should get colored output.
func AutoColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stage is one section of a text report.
type stage struct {
	title string
	list  diag.List
}

func stages(res *pipeline.Result) []stage {
	return []stage{
		{"lexical", res.Lexical},
		{"syntax", res.Syntax},
		{"semantic", res.Semantic},
	}
}

type painter struct {
	sev  map[diag.Severity]*color.Color
	bold *color.Color
}

func newPainter(enabled bool) *painter {
	p := &painter{
		sev: map[diag.Severity]*color.Color{
			diag.Lexical:  color.New(color.FgMagenta),
			diag.Syntax:   color.New(color.FgYellow),
			diag.Semantic: color.New(color.FgRed),
			diag.Internal: color.New(color.FgRed, color.Bold),
		},
		bold: color.New(color.Bold),
	}
	for _, c := range p.sev {
		toggle(c, enabled)
	}
	toggle(p.bold, enabled)
	return p
}

func toggle(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func (p *painter) diagnostic(d diag.Diagnostic) string {
	tag := p.sev[d.Severity].Sprint(d.Severity.String())
	if !d.HasPos() {
		return fmt.Sprintf("%s: %s", tag, d.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, tag, d.Msg)
}

// Text writes the diagnostics of res grouped by stage. Every stage is
// printed, with "(none)" when it found nothing. A stage that did not run
// is marked as skipped.
func Text(w io.Writer, res *pipeline.Result, opts Options) error {
	p := newPainter(opts.Color)
	ew := &errWriter{w: w}

	ew.printf("%s\n", p.bold.Sprintf("== %s ==", res.Name))
	for _, st := range stages(res) {
		ew.printf("%s diagnostics:\n", st.title)
		switch {
		case st.title == "semantic" && !res.Analyzed:
			ew.printf("  (skipped)\n")
		case st.list.Len() == 0:
			ew.printf("  (none)\n")
		default:
			for _, d := range st.list.Items() {
				ew.printf("  %s\n", p.diagnostic(d))
			}
		}
	}
	ew.printf("%s\n", Summary(res))
	return ew.err
}

// Summary returns a one-line outcome for res.
func Summary(res *pipeline.Result) string {
	if res.OK() {
		return fmt.Sprintf("%s: ok", res.Name)
	}
	n := res.Lexical.Len() + res.Syntax.Len() + res.Semantic.Len()
	noun := "diagnostics"
	if n == 1 {
		noun = "diagnostic"
	}
	return fmt.Sprintf("%s: %d %s (lexical %d, syntax %d, semantic %d)",
		res.Name, n, noun, res.Lexical.Len(), res.Syntax.Len(), res.Semantic.Len())
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
