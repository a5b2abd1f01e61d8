package report

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/you-not-fish/golite/internal/syntax"
	"github.com/you-not-fish/golite/internal/types"
)

// MaxValueWidth is the number of runes of a token value shown in tables
// and logs before it is cut off with an ellipsis.
const MaxValueWidth = 40

// Truncate shortens s to MaxValueWidth runes followed by "…".
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxValueWidth {
		return s
	}
	r := []rune(s)
	return string(r[:MaxValueWidth]) + "…"
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// Tokens renders toks as a TYPE, LINE, COL, VALUE table.
func Tokens(w io.Writer, toks []syntax.Token) {
	t := newTable(w, "TYPE", "LINE", "COL", "VALUE")
	for _, tok := range toks {
		t.Append([]string{
			tok.Kind.String(),
			strconv.Itoa(int(tok.Pos.Line())),
			strconv.Itoa(int(tok.Pos.Col())),
			Truncate(tok.Lit),
		})
	}
	t.Render()
}

// Symbols renders the table's bindings sorted by name.
func Symbols(w io.Writer, table *types.Table) {
	t := newTable(w, "NAME", "TYPE", "KIND", "LINE", "COL")
	for _, sym := range table.Symbols() {
		t.Append([]string{
			sym.Name,
			sym.Type.String(),
			sym.Kind.String(),
			strconv.Itoa(sym.Line),
			strconv.Itoa(sym.Col),
		})
	}
	t.Render()
}
