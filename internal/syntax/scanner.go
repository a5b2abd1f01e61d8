package syntax

import (
	"fmt"
	"go/constant"
	gotoken "go/token"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/you-not-fish/golite/internal/diag"
)

// Scanner performs lexical analysis on Go-lite source code.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Kind           // token kind
	lit    string         // token literal (identifier name, number, string content)
	kind   LitKind        // literal kind (only valid when tok == _Literal)
	val    constant.Value // literal value (only valid when tok == _Literal)
	tokPos Pos            // token start position

	// ASI (Automatic Semicolon Insertion) state
	nlsemi bool // whether to insert semicolon at newline

	// Configuration
	asiEnabled bool // whether ASI is enabled (default true)

	// Literal accumulation
	litBuf strings.Builder

	report diag.Reporter
}

// NewScanner creates a new Scanner for src. Lexical diagnostics are sent to
// r; if r is nil they are dropped.
func NewScanner(src string, r diag.Reporter) *Scanner {
	if r == nil {
		r = diag.Discard
	}
	s := &Scanner{
		asiEnabled: true, // ASI enabled by default
		report:     r,
	}
	s.source = *newSource(src, s.lexError)
	return s
}

func (s *Scanner) lexError(line, col uint32, code, msg string) {
	s.report.Report(diag.Diagnostic{
		Severity: diag.Lexical,
		Code:     code,
		Msg:      msg,
		Line:     int(line),
		Col:      int(col),
	})
}

// SetASIEnabled enables or disables automatic semicolon insertion.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	// 1. Check if we need to insert semicolon at newline/EOF
	nlsemi := s.nlsemi
	s.nlsemi = false
	s.val = nil

redo:
	// 2. Skip whitespace (not including '\n')
	s.skipWhitespace()

	// 3. ASI: insert semicolon before newline or EOF if needed
	if s.asiEnabled && nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	// 4. Skip newlines when not inserting semicolon
	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	// 5. Record token start position
	s.tokPos = s.pos()

	// 6. Scan token based on current character
	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber(false)

	case s.ch == '"':
		s.scanString()

	case s.ch == '`':
		s.scanRawString()

	case s.ch == '/' && s.peek() == '*':
		if s.skipBlockComment() && s.asiEnabled && nlsemi {
			// A block comment spanning lines acts like a newline.
			s.tok = _Semi
			s.lit = "newline"
			return
		}
		goto redo

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// scanOperator returned true, meaning we skipped a comment
			goto redo
		}

	default:
		if s.bad {
			s.error(diag.CodeIllegalChar, "illegal character: invalid UTF-8 encoding")
		} else {
			s.error(diag.CodeIllegalChar, fmt.Sprintf("illegal character %q", s.ch))
		}
		s.nextch()
		goto redo
	}

	// 7. Set nlsemi flag for next token
	s.nlsemi = s.shouldInsertSemi()
}

// Kind returns the current token kind.
func (s *Scanner) Kind() Kind {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Kind() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Value returns the current literal's constant value, or nil.
func (s *Scanner) Value() constant.Value {
	return s.val
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Token returns the current token as a value.
func (s *Scanner) Token() Token {
	t := Token{Kind: s.tok, Lit: s.lit, Pos: s.tokPos}
	if s.tok == _Literal {
		t.LitKind = s.kind
		t.Value = s.val
	}
	return t
}

// Mode controls optional scanner behavior.
type Mode uint

const (
	// NoASI disables automatic semicolon insertion.
	NoASI Mode = 1 << iota
)

// Tokenize returns the token sequence of src with automatic semicolon
// insertion enabled. See TokenizeMode.
func Tokenize(src string, r diag.Reporter) iter.Seq[Token] {
	return TokenizeMode(src, r, 0)
}

// TokenizeMode returns the token sequence of src. The sequence is lazy and
// always ends with an EOF token. Every iteration scans src from the start
// with a fresh Scanner, so lexical diagnostics are reported to r once per
// iteration.
func TokenizeMode(src string, r diag.Reporter, mode Mode) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := NewScanner(src, r)
		s.SetASIEnabled(mode&NoASI == 0)
		for {
			s.Next()
			if !yield(s.Token()) || s.tok == _EOF {
				return
			}
		}
	}
}

// peek returns the character after s.ch without consuming anything.
func (s *Scanner) peek() rune {
	if s.ch < 0 || s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.buf[s.offs:])
	return r
}

// skipWhitespace skips space, tab, and carriage return.
// Note: newline is NOT skipped here because it may trigger ASI.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// shouldInsertSemi reports whether a semicolon should be inserted
// after the current token when followed by a newline.
func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Literal:
		return true
	case _Break, _Continue, _Return:
		return true
	case _Rparen, _Rbrack, _Rbrace:
		return true
	}
	return s.tok.IsTypeKeyword()
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier, keyword or boolean literal.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()

	switch s.lit {
	case "true", "false":
		s.tok = _Literal
		s.kind = BoolLit
		s.val = constant.MakeBool(s.lit == "true")
		return
	}
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a decimal integer or float literal. If seenPoint is
// true, the leading '.' has already been consumed.
func (s *Scanner) scanNumber(seenPoint bool) {
	s.litBuf.Reset()
	s.kind = IntLit

	if seenPoint {
		s.kind = FloatLit
		s.litBuf.WriteByte('.')
		s.scanDecimalDigits()
		s.scanExponent()
	} else {
		s.scanDecimalDigits()
		if s.ch == '.' || lower(s.ch) == 'e' {
			s.scanFraction()
		}
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal

	// Integers are always decimal; drop leading zeros so 010 is ten.
	lit, tok := s.lit, gotoken.INT
	if s.kind == FloatLit {
		tok = gotoken.FLOAT
	} else if lit = strings.TrimLeft(lit, "0"); lit == "" {
		lit = "0"
	}
	s.val = constant.MakeFromLiteral(lit, tok, 0)
	if s.val.Kind() == constant.Unknown {
		s.errorAt(s.tokPos, diag.CodeBadNumber, fmt.Sprintf("malformed number %s", s.lit))
	}
}

// scanDecimalDigits scans decimal digits.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanFraction scans the fractional part of a float (. and/or exponent).
func (s *Scanner) scanFraction() {
	if s.ch == '.' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}
	s.scanExponent()
}

// scanExponent scans an optional exponent.
func (s *Scanner) scanExponent() {
	if lower(s.ch) != 'e' {
		return
	}
	s.kind = FloatLit
	s.continueLit()
	s.nextch()

	// Optional sign
	if s.ch == '+' || s.ch == '-' {
		s.continueLit()
		s.nextch()
	}

	if !isDigit(s.ch) {
		// The malformed literal is reported once by scanNumber.
		return
	}
	s.scanDecimalDigits()
}

// scanString scans a double-quoted string literal.
// The resulting literal is the decoded string content (escape sequences are interpreted).
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.finishString(b.String())
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.errorAt(s.tokPos, diag.CodeUnterminated, "string literal not terminated")
			s.finishString(b.String())
			return

		default:
			s.literalRune(&b)
		}
	}
}

// scanRawString scans a backtick string. Raw strings may span lines and
// have no escapes.
func (s *Scanner) scanRawString() {
	s.nextch() // skip opening `
	var b strings.Builder

	for {
		switch {
		case s.ch == '`':
			s.nextch()
			s.finishString(b.String())
			return

		case s.ch < 0:
			s.errorAt(s.tokPos, diag.CodeUnterminated, "raw string literal not terminated")
			s.finishString(b.String())
			return

		default:
			s.literalRune(&b)
		}
	}
}

// literalRune appends the current character to a string literal and
// advances. An invalid encoding is reported and kept as U+FFFD.
func (s *Scanner) literalRune(b *strings.Builder) {
	if s.bad {
		s.error(diag.CodeIllegalChar, "invalid UTF-8 encoding in string literal")
	}
	b.WriteRune(s.ch)
	s.nextch()
}

func (s *Scanner) finishString(v string) {
	s.lit = v
	s.tok = _Literal
	s.kind = StringLit
	s.val = constant.MakeString(v)
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '\'':
		s.nextch()
		return '\'', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape()
	case '\n', -1:
		// Let scanString report the unterminated literal.
		return 0, false
	default:
		s.error(diag.CodeBadEscape, fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanHexEscape scans a \xNN escape sequence.
func (s *Scanner) scanHexEscape() (rune, bool) {
	var val rune
	for i := 0; i < 2; i++ {
		if !isHexDigit(s.ch) {
			s.error(diag.CodeBadEscape, "invalid hex escape")
			return 0, false
		}
		val = val*16 + hexValue(s.ch)
		s.nextch()
	}
	return val, true
}

// hexValue returns the numeric value of a hex digit.
func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= lower(r) && lower(r) <= 'f':
		return lower(r) - 'a' + 10
	}
	return 0
}

// op sets the current token to an operator.
func (s *Scanner) op(k Kind) {
	s.tok = k
	s.lit = k.String()
}

// opAssign consumes a trailing '=' if present and sets the token to
// assign, otherwise to plain.
func (s *Scanner) opAssign(plain, assign Kind) {
	if s.ch == '=' {
		s.nextch()
		s.op(assign)
		return
	}
	s.op(plain)
}

// scanOperator scans an operator or delimiter, trying the longest form
// first. Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.opAssign(_Add, _AddAssign)
	case '-':
		s.opAssign(_Sub, _SubAssign)
	case '*':
		s.opAssign(_Mul, _MulAssign)
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		s.opAssign(_Div, _DivAssign)
	case '%':
		s.opAssign(_Rem, _RemAssign)
	case '&':
		switch s.ch {
		case '&':
			s.nextch()
			s.op(_AndAnd)
		case '^':
			s.nextch()
			s.opAssign(_AndNot, _AndNotAssign)
		default:
			s.opAssign(_And, _AndAssign)
		}
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.op(_OrOr)
		} else {
			s.opAssign(_Or, _OrAssign)
		}
	case '^':
		s.opAssign(_Xor, _XorAssign)
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.op(_Leq)
		case '<':
			s.nextch()
			s.opAssign(_Shl, _ShlAssign)
		default:
			s.op(_Lss)
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.op(_Geq)
		case '>':
			s.nextch()
			s.opAssign(_Shr, _ShrAssign)
		default:
			s.op(_Gtr)
		}
	case '=':
		s.opAssign(_Assign, _Eql)
	case '!':
		s.opAssign(_Not, _Neq)
	case ':':
		s.opAssign(_Colon, _Define)
	case '(':
		s.op(_Lparen)
	case ')':
		s.op(_Rparen)
	case '[':
		s.op(_Lbrack)
	case ']':
		s.op(_Rbrack)
	case '{':
		s.op(_Lbrace)
	case '}':
		s.op(_Rbrace)
	case ',':
		s.op(_Comma)
	case ';':
		s.op(_Semi)
	case '.':
		if isDigit(s.ch) {
			s.scanNumber(true)
			return false
		}
		s.op(_Dot)
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the first /, s.ch is the second
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* */ comment starting at s.ch and reports
// whether it contained a newline. Embedded newlines advance the line
// counter through nextch.
func (s *Scanner) skipBlockComment() bool {
	start := s.pos()
	s.nextch() // /
	s.nextch() // *

	newline := false
	for s.ch >= 0 {
		if s.ch == '\n' {
			newline = true
		}
		if s.ch == '*' {
			s.nextch()
			if s.ch == '/' {
				s.nextch()
				return newline
			}
			continue
		}
		s.nextch()
	}
	s.errorAt(start, diag.CodeUnterminated, "comment not terminated")
	return newline
}
