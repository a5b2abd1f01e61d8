package syntax

import "iter"

// Cursor is the parser's pull interface over a token stream.
// Once the stream is exhausted both methods keep returning an EOF token.
type Cursor interface {
	// Peek returns the next token without consuming it.
	Peek() Token
	// Advance consumes and returns the next token.
	Advance() Token
}

// PullCursor adapts a lazy token sequence using iter.Pull.
// Call Release when done to stop the underlying sequence.
type PullCursor struct {
	next func() (Token, bool)
	stop func()
	cur  Token
	have bool
}

// NewCursor returns a cursor pulling tokens from seq.
func NewCursor(seq iter.Seq[Token]) *PullCursor {
	next, stop := iter.Pull(seq)
	return &PullCursor{next: next, stop: stop}
}

func (c *PullCursor) fill() {
	if c.have {
		return
	}
	t, ok := c.next()
	if !ok {
		t = Token{Kind: _EOF, Pos: c.cur.Pos}
	}
	c.cur, c.have = t, true
}

func (c *PullCursor) Peek() Token {
	c.fill()
	return c.cur
}

func (c *PullCursor) Advance() Token {
	c.fill()
	if c.cur.Kind != _EOF {
		c.have = false
	}
	return c.cur
}

// Release stops the underlying sequence. It is safe to call more than once.
func (c *PullCursor) Release() {
	c.stop()
}

// SliceCursor walks a fixed token slice.
type SliceCursor struct {
	toks []Token
	i    int
}

// NewSliceCursor returns a cursor over toks. An EOF token is appended if
// toks does not already end with one.
func NewSliceCursor(toks []Token) *SliceCursor {
	if n := len(toks); n == 0 || toks[n-1].Kind != _EOF {
		var p Pos
		if n > 0 {
			p = toks[n-1].Pos
		}
		toks = append(toks[:n:n], Token{Kind: _EOF, Pos: p})
	}
	return &SliceCursor{toks: toks}
}

func (c *SliceCursor) Peek() Token {
	return c.toks[c.i]
}

func (c *SliceCursor) Advance() Token {
	t := c.toks[c.i]
	if c.i < len(c.toks)-1 {
		c.i++
	}
	return t
}
