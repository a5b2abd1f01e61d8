package syntax

import "unicode/utf8"

// source is a character reader with position tracking over an in-memory
// string. It provides character-by-character access to UTF-8 text.
type source struct {
	// Input
	buf string

	// Position tracking
	line uint32 // current line number (1-based)
	col  uint32 // current column number (1-based, byte offset)

	// Current state
	ch   rune // current character, -1 for EOF
	bad  bool // ch is utf8.RuneError decoded from an invalid encoding
	offs int  // current byte offset in buf

	// Error handling
	errh func(line, col uint32, code, msg string)
}

// newSource creates a new source over src.
// The errh function is called for each error; if nil, errors are silently ignored.
func newSource(src string, errh func(line, col uint32, code, msg string)) *source {
	s := &source{
		buf:  src,
		line: 1,
		col:  0,  // Will be incremented to 1 by first nextch()
		ch:   -1, // Sentinel: -1 means "before first char", prevents position update
		errh: errh,
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
// Initial state: line=1, col=0, s.ch=-1
// After first nextch(): line=1, col=1, s.ch=first char
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		s.bad = false
		return
	}

	// Invalid UTF-8 yields utf8.RuneError with width 1; an encoded U+FFFD
	// in the source is three bytes wide and is not bad.
	r, width := utf8.DecodeRuneInString(s.buf[s.offs:])
	s.ch = r
	s.bad = r == utf8.RuneError && width == 1
	s.offs += width
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.line, s.col)
}

// error reports a lexical error at the current position.
func (s *source) error(code, msg string) {
	s.errorAt(s.pos(), code, msg)
}

// errorAt reports a lexical error at p.
func (s *source) errorAt(p Pos, code, msg string) {
	if s.errh != nil {
		s.errh(p.line, p.col, code, msg)
	}
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// lower returns the lowercase version of r if r is an ASCII letter.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is a whitespace character (space, tab, or carriage return).
// Note: newline '\n' is NOT included because it may trigger ASI.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// isOperatorStart reports whether r can start an operator or delimiter.
func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '=', '!', ':',
		'(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
