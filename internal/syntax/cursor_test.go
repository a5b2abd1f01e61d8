package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullCursor(t *testing.T) {
	c := NewCursor(TokenizeMode("x := 1", nil, NoASI))
	defer c.Release()

	assert.Equal(t, _Name, c.Peek().Kind)
	assert.Equal(t, _Name, c.Peek().Kind, "Peek must not consume")
	assert.Equal(t, "x", c.Advance().Lit)
	assert.Equal(t, _Define, c.Advance().Kind)
	assert.Equal(t, _Literal, c.Advance().Kind)

	// EOF is sticky.
	for i := 0; i < 3; i++ {
		assert.Equal(t, _EOF, c.Advance().Kind)
		assert.Equal(t, _EOF, c.Peek().Kind)
	}
}

func TestPullCursorReleaseEarly(t *testing.T) {
	c := NewCursor(Tokenize("a b c d", nil))
	require.Equal(t, "a", c.Advance().Lit)
	c.Release()
	c.Release()
}

func TestSliceCursorAppendsEOF(t *testing.T) {
	toks := []Token{
		{Kind: _Name, Lit: "x", Pos: NewPos(1, 1)},
		{Kind: _Semi, Lit: ";", Pos: NewPos(1, 2)},
	}
	c := NewSliceCursor(toks)

	assert.Equal(t, "x", c.Advance().Lit)
	assert.Equal(t, _Semi, c.Advance().Kind)
	eof := c.Advance()
	assert.Equal(t, _EOF, eof.Kind)
	assert.Equal(t, NewPos(1, 2), eof.Pos)
	assert.Equal(t, _EOF, c.Peek().Kind)

	// The caller's slice is not modified.
	assert.Len(t, toks, 2)
}

func TestSliceCursorEmpty(t *testing.T) {
	c := NewSliceCursor(nil)
	assert.Equal(t, _EOF, c.Peek().Kind)
	assert.Equal(t, _EOF, c.Advance().Kind)
}
