package diag

import (
	"fmt"
	"strings"
)

// List is an ordered collection of diagnostics. The zero value is an empty
// list ready to use. *List implements Reporter.
type List struct {
	items []Diagnostic
}

// Report appends d to the list.
func (l *List) Report(d Diagnostic) {
	l.items = append(l.items, d)
}

// Add appends all diagnostics of other to l.
func (l *List) Add(other List) {
	l.items = append(l.items, other.items...)
}

// Len returns the number of diagnostics.
func (l List) Len() int {
	return len(l.items)
}

// Items returns a copy of the diagnostics in report order.
func (l List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the i'th diagnostic.
func (l List) At(i int) Diagnostic {
	return l.items[i]
}

// Count returns the number of diagnostics with the given severity.
func (l List) Count(sev Severity) int {
	n := 0
	for _, d := range l.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// CountCode returns the number of diagnostics with the given code.
func (l List) CountCode(code string) int {
	n := 0
	for _, d := range l.items {
		if d.Code == code {
			n++
		}
	}
	return n
}

// BySeverity returns the diagnostics of one severity, in report order.
func (l List) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.items {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether the list is non-empty.
func (l List) HasErrors() bool {
	return len(l.items) > 0
}

// Err returns nil for an empty list, otherwise an error describing the first
// diagnostic and the total count. The error wraps ErrDiagnostics.
func (l List) Err() error {
	switch len(l.items) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%w: %s", ErrDiagnostics, l.items[0])
	}
	return fmt.Errorf("%w: %s (and %d more)", ErrDiagnostics, l.items[0], len(l.items)-1)
}

// String returns one diagnostic per line.
func (l List) String() string {
	var b strings.Builder
	for _, d := range l.items {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
