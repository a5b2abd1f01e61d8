// Package diag defines the structured diagnostics produced by the Go-lite
// lexer, parser and semantic analyzer.
//
// Diagnostics are plain values. The core packages record them through a
// Reporter and never panic or return them as control-flow errors; printing
// and persisting them is left to the caller.
package diag

import (
	"errors"
	"fmt"
)

// Severity classifies a diagnostic by the stage that produced it.
type Severity uint8

const (
	Lexical  Severity = iota // illegal character, unterminated literal
	Syntax                   // unexpected token
	Semantic                 // redeclaration, undefined name, type mismatch
	Internal                 // a rule faulted unexpectedly

	severityCount
)

var severityNames = [...]string{
	Lexical:  "lexical",
	Syntax:   "syntax",
	Semantic: "semantic",
	Internal: "internal",
}

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	if s < severityCount {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", s)
}

// MarshalText encodes the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if name == string(text) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

// Diagnostic codes. Codes are stable identifiers that tests and reports can
// match on without depending on message wording.
const (
	CodeIllegalChar    = "illegal-char"
	CodeUnterminated   = "unterminated"
	CodeBadEscape      = "bad-escape"
	CodeBadNumber      = "bad-number"
	CodeUnexpected     = "unexpected-token"
	CodeUnsupported    = "unsupported"
	CodeNonAssoc       = "non-assoc"
	CodeTooManyErrors  = "too-many-errors"
	CodeRedeclared     = "redeclared"
	CodeUndefined      = "undefined"
	CodeUndefinedFunc  = "undefined-func"
	CodeTypeMismatch   = "type-mismatch"
	CodeNonBoolCond    = "non-bool-cond"
	CodeUnknownPackage = "unknown-package"
	CodeReturnMismatch = "return-mismatch"
	CodeInternal       = "internal"
)

// Diagnostic is a single problem found in the source.
// Line and Col are 1-based; Line == 0 means the diagnostic has no position.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	Msg      string   `json:"message" yaml:"message"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Col      int      `json:"col,omitempty" yaml:"col,omitempty"`
}

// HasPos reports whether the diagnostic carries a source position.
func (d Diagnostic) HasPos() bool {
	return d.Line > 0
}

// String formats the diagnostic as "line:col: severity: msg".
func (d Diagnostic) String() string {
	if !d.HasPos() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Severity, d.Msg)
}

// Error implements the error interface so a diagnostic can be returned
// where an error is expected.
func (d Diagnostic) Error() string {
	return d.String()
}

// Newf builds a diagnostic with a formatted message.
func Newf(sev Severity, code string, line, col int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Msg:      fmt.Sprintf(format, args...),
		Line:     line,
		Col:      col,
	}
}

// ----------------------------------------------------------------------------
// Reporting

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard is a Reporter that drops everything.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// ErrDiagnostics is wrapped by the error returned from List.Err.
var ErrDiagnostics = errors.New("diagnostics reported")
