package syntax

import (
	"fmt"
	"iter"

	"github.com/you-not-fish/golite/internal/diag"
)

// Result is the outcome of parsing one token stream.
type Result struct {
	OK          bool     // false iff a syntax diagnostic was recorded
	File        *Program // possibly partial; never nil
	Diagnostics diag.List
}

// Parse parses a complete token stream, typically from Tokenize.
// Lexical diagnostics are the tokenizer's concern; only syntax diagnostics
// are collected in the result.
func Parse(tokens iter.Seq[Token]) Result {
	var diags diag.List
	c := NewCursor(tokens)
	defer c.Release()

	p := NewParser(c, &diags)
	file := p.Parse()
	return Result{OK: p.Errors() == 0, File: file, Diagnostics: diags}
}

// Parser performs syntax analysis on a Go-lite token stream.
type Parser struct {
	cur Cursor

	// Current token info (cached from cursor)
	tok  Token
	kind Kind
	lit  string
	pos  Pos

	// Error handling
	report    diag.Reporter
	errcnt    int
	maxErrors int  // 0 means unlimited
	abort     bool // set to true when error limit reached
	lastSync  Kind // token consumed by the most recent sync
}

// NewParser creates a Parser reading from c. Syntax diagnostics are sent
// to r; if r is nil they are only counted.
func NewParser(c Cursor, r diag.Reporter) *Parser {
	if r == nil {
		r = diag.Discard
	}
	p := &Parser{cur: c, report: r}
	p.load()
	return p
}

// SetMaxErrors sets the number of syntax errors after which parsing stops.
// Zero, the default, means no limit.
func (p *Parser) SetMaxErrors(n int) {
	p.maxErrors = n
}

// Errors returns the number of syntax errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) load() {
	p.tok = p.cur.Peek()
	p.kind = p.tok.Kind
	p.lit = p.tok.Lit
	p.pos = p.tok.Pos
}

// next advances to the next token.
func (p *Parser) next() {
	p.cur.Advance()
	p.load()
}

// got reports whether the current token is k.
// If so, it consumes the token and returns true.
func (p *Parser) got(k Kind) bool {
	if p.kind == k {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches k.
// Otherwise, reports an error and bails out to the enclosing recovery point.
func (p *Parser) want(k Kind) {
	if !p.got(k) {
		p.unexpected(fmt.Sprintf("%q", k.String()))
	}
}

// ----------------------------------------------------------------------------
// Error handling

// bailout is the panic value used to unwind to the nearest guard after a
// syntax error. It never leaves the parser.
type bailout struct{}

// errorAt records a syntax diagnostic at pos.
func (p *Parser) errorAt(pos Pos, code, msg string) {
	if p.abort {
		panic(bailout{})
	}
	p.errcnt++
	p.report.Report(diag.Diagnostic{
		Severity: diag.Syntax,
		Code:     code,
		Msg:      msg,
		Line:     int(pos.Line()),
		Col:      int(pos.Col()),
	})
	p.errorLimitCheck(pos)
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.maxErrors > 0 && p.errcnt >= p.maxErrors {
		p.abort = true
		p.errcnt++
		p.report.Report(diag.Diagnostic{
			Severity: diag.Syntax,
			Code:     diag.CodeTooManyErrors,
			Msg:      "too many errors; aborting parse",
			Line:     int(pos.Line()),
			Col:      int(pos.Col()),
		})
		panic(bailout{})
	}
}

// fail records a syntax diagnostic at the current token and bails out.
func (p *Parser) fail(code, msg string) {
	p.errorAt(p.pos, code, msg)
	panic(bailout{})
}

// unexpected reports the current token as unexpected where what was
// expected, and bails out.
func (p *Parser) unexpected(what string) {
	p.fail(diag.CodeUnexpected, fmt.Sprintf("unexpected %s, expected %s", describe(p.tok), what))
}

// describe formats a token for a diagnostic, naming its kind and literal.
func describe(t Token) string {
	switch {
	case t.Kind == _EOF:
		return "EOF"
	case t.Kind == _Name:
		return "name " + t.Lit
	case t.Kind == _Literal && t.LitKind == StringLit:
		return fmt.Sprintf("literal %q", t.Lit)
	case t.Kind == _Literal:
		return "literal " + t.Lit
	case t.Kind == _Semi && (t.Lit == "newline" || t.Lit == "EOF"):
		return t.Lit
	case t.Kind.IsKeyword():
		return "keyword " + t.Kind.String()
	}
	return fmt.Sprintf("%q", t.Kind.String())
}

// guard runs f and reports whether it completed. A bailout from f is
// recovered here and the token stream is resynchronized.
func (p *Parser) guard(f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, bail := r.(bailout); !bail {
				panic(r)
			}
			ok = false
			if !p.abort {
				p.sync()
			}
		}
	}()
	f()
	return true
}

// sync discards tokens until a ';' or '}' has been consumed or EOF is
// reached. At least one token is consumed unless the parser is at EOF.
// Braces opened while skipping are skipped as a unit, so only a '}' at the
// starting depth counts as closing the current block; that case is recorded
// in p.lastSync.
func (p *Parser) sync() {
	depth := 0
	for p.kind != _EOF {
		k := p.kind
		p.next()
		switch k {
		case _Lbrace:
			depth++
		case _Rbrace:
			if depth == 0 {
				p.lastSync = _Rbrace
				return
			}
			if depth--; depth == 0 {
				// The broken statement ends with its block; take the
				// terminator that follows it too.
				p.got(_Semi)
				p.lastSync = _Semi
				return
			}
		case _Semi:
			if depth == 0 {
				p.lastSync = _Semi
				return
			}
		}
	}
	p.lastSync = _EOF
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the whole token stream and returns the program. When syntax
// errors were found the program holds every declaration and statement that
// parsed cleanly.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	prog.pos = p.pos

	for !p.abort && p.kind != _EOF {
		var n Node
		if p.guard(func() { n = p.topDecl() }) && n != nil {
			prog.Decls = append(prog.Decls, n)
		}
	}

	return prog
}

// topDecl parses a top-level declaration or statement.
func (p *Parser) topDecl() Node {
	switch p.kind {
	case _Package:
		return p.packageDecl()
	case _Import:
		return p.importDecl()
	case _Func:
		return p.funcDecl()
	default:
		return p.stmt()
	}
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.kind != _Name {
		p.unexpected("name")
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// typeName parses one of the basic type keywords.
func (p *Parser) typeName() *TypeName {
	if !p.kind.IsTypeKeyword() {
		p.unexpected("type")
	}
	t := &TypeName{Kind: p.kind, Name: p.kind.String()}
	t.pos = p.pos
	p.next()
	return t
}

// stmtEnd consumes a statement terminator. A terminator may be omitted
// before a closing '}' or at EOF.
func (p *Parser) stmtEnd() {
	switch p.kind {
	case _Semi:
		p.next()
	case _Rbrace, _EOF:
	default:
		p.unexpected(`";"`)
	}
}

// ----------------------------------------------------------------------------
// Declarations

// packageDecl parses: package Name ;
func (p *Parser) packageDecl() *PackageDecl {
	d := &PackageDecl{}
	d.pos = p.pos

	p.want(_Package)
	d.Name = p.name()
	p.stmtEnd()
	return d
}

// importDecl parses: import "path" ;
func (p *Parser) importDecl() *ImportDecl {
	d := &ImportDecl{}
	d.pos = p.pos

	p.want(_Import)

	if p.kind != _Literal || p.tok.LitKind != StringLit {
		p.unexpected("import path")
	}
	d.Path = &BasicLit{Value: p.lit, Kind: StringLit, Val: p.tok.Value}
	d.Path.pos = p.pos
	p.next()

	p.stmtEnd()
	return d
}

// varDecl parses: var Name Type [= Expr] ;
func (p *Parser) varDecl() *VarDecl {
	d := &VarDecl{}
	d.pos = p.pos

	p.want(_Var)
	d.Name = p.name()
	d.Type = p.typeName()

	if p.got(_Assign) {
		d.Init = p.expr()
	}

	p.stmtEnd()
	return d
}

// funcDecl parses: func Name(params) [Type] { body }
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Func)
	d.Name = p.name()
	d.Params = p.paramList()

	// Optional result type
	if p.kind != _Lbrace {
		d.Result = p.typeName()
	}

	d.Body = p.blockBody()

	p.got(_Semi)
	return d
}

// paramList parses (p1 T1, p2 T2, ...)
func (p *Parser) paramList() []*Param {
	p.want(_Lparen)

	var params []*Param
	for p.kind != _Rparen {
		f := &Param{}
		f.pos = p.pos
		f.Name = p.name()
		f.Type = p.typeName()
		params = append(params, f)

		if !p.got(_Comma) {
			break
		}
	}

	p.want(_Rparen)
	return params
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	switch p.kind {
	case _Var:
		return p.varDecl()

	case _If:
		s := p.ifStmt()
		p.got(_Semi)
		return s

	case _Return:
		return p.returnStmt()

	case _Semi:
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s

	case _Name:
		return p.simpleStmt()

	case _For, _Switch, _Case, _Default, _Go, _Struct, _Interface, _Type, _Const, _Break, _Continue:
		p.fail(diag.CodeUnsupported, fmt.Sprintf("%q is not supported in Go-lite", p.kind.String()))
	}

	p.unexpected("statement")
	return nil
}

// simpleStmt parses a statement that starts with a name: a short
// declaration, an assignment, a compound assignment or a call.
func (p *Parser) simpleStmt() Stmt {
	pos := p.pos
	name := p.name()

	switch {
	case p.kind == _Define:
		p.next()
		s := &ShortDecl{Name: name, Init: p.expr()}
		s.pos = pos
		p.stmtEnd()
		return s

	case p.kind == _Assign:
		p.next()
		s := &Assign{Name: name, X: p.expr()}
		s.pos = pos
		p.stmtEnd()
		return s

	case p.kind.IsCompoundAssign():
		op := p.kind.BinaryOp()
		p.next()
		s := &CompoundAssign{Op: op, Name: name, X: p.expr()}
		s.pos = pos
		p.stmtEnd()
		return s

	case p.kind == _Dot || p.kind == _Lparen:
		s := &ExprStmt{X: p.callExpr(name)}
		s.pos = pos
		p.stmtEnd()
		return s
	}

	p.unexpected(`":=", "=", assignment operator or call`)
	return nil
}

// blockBody parses { stmts... } and returns the statements.
func (p *Parser) blockBody() []Stmt {
	p.want(_Lbrace)

	var list []Stmt
	for !p.abort && p.kind != _Rbrace && p.kind != _EOF {
		var s Stmt
		if p.guard(func() { s = p.stmt() }) {
			if s != nil {
				list = append(list, s)
			}
			continue
		}
		if p.lastSync == _Rbrace {
			// Recovery consumed the closing brace of this block.
			return list
		}
	}

	p.want(_Rbrace)
	return list
}

// ifStmt parses: if cond { then } [else { else } | else if ...]
func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.expr()
	s.Then = p.blockBody()

	if p.got(_Else) {
		if p.kind == _If {
			s.Else = []Stmt{p.ifStmt()}
		} else {
			s.Else = p.blockBody()
			if s.Else == nil {
				s.Else = []Stmt{}
			}
		}
	}

	return s
}

// returnStmt parses: return [expr]
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)

	// Optional return value (check for statement terminators)
	if p.kind != _Semi && p.kind != _Rbrace && p.kind != _EOF {
		s.Result = p.expr()
	}

	p.stmtEnd()
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec
// by precedence climbing. Comparison operators do not associate: a
// comparison whose left operand is an unparenthesized comparison is
// reported and folded to the left so parsing can continue.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()
	chained := false

	for {
		oprec := p.kind.Precedence()
		if oprec <= prec {
			return x
		}

		op, opPos := p.kind, p.pos
		if op.IsRelational() && chained {
			p.errorAt(opPos, diag.CodeNonAssoc,
				fmt.Sprintf("comparison operators do not associate: unexpected %q after comparison", op.String()))
		}
		p.next() // consume operator

		b := &BinaryExpr{Op: op, X: x}
		b.pos = x.Pos()
		// Parse right operand with higher precedence (left associative)
		b.Y = p.binaryExpr(oprec)
		x = b
		chained = op.IsRelational()
	}
}

// unaryExpr parses a unary expression. Unary operators bind tighter than
// any binary operator and associate to the right.
func (p *Parser) unaryExpr() Expr {
	switch p.kind {
	case _Not, _Sub:
		u := &UnaryExpr{Op: p.kind}
		u.pos = p.pos
		p.next()
		u.X = p.unaryExpr()
		return u
	}
	return p.operand()
}

// operand parses a literal, a name, a call or a parenthesized expression.
func (p *Parser) operand() Expr {
	switch p.kind {
	case _Name:
		n := p.name()
		if p.kind == _Dot || p.kind == _Lparen {
			return p.callExpr(n)
		}
		return n

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.tok.LitKind, Val: p.tok.Value}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		p.next()
		x := p.expr()
		p.want(_Rparen)
		return x
	}

	p.unexpected("expression")
	return nil
}

// callExpr parses the rest of a call whose first name is already
// consumed: .Method(args) or (args).
func (p *Parser) callExpr(first *Name) *CallExpr {
	call := &CallExpr{}
	call.pos = first.Pos()

	if p.got(_Dot) {
		call.Receiver = first
		call.Method = p.name()
	} else {
		call.Method = first
	}

	p.want(_Lparen)
	for p.kind != _Rparen {
		call.Args = append(call.Args, p.expr())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)

	return call
}
