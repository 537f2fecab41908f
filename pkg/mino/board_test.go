package mino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	assert.Equal(t, 0, b.Filled())

	for _, size := range [][2]int{{0, 20}, {10, 0}, {-1, 5}} {
		_, err := NewBoard(size[0], size[1])
		assert.Error(t, err, "size %v", size)
	}
}

func TestBoardGetSet(t *testing.T) {
	b, err := NewBoard(4, 3)
	require.NoError(t, err)

	assert.True(t, b.Empty(0, 0))

	b.Set(3, 2, BlockSolidRed)
	b.Set(0, 1, BlockSolidCyan)

	assert.Equal(t, BlockSolidRed, b.Get(3, 2))
	assert.Equal(t, BlockSolidCyan, b.Get(0, 1))
	assert.Equal(t, 2, b.Filled())

	b.Set(3, 2, BlockNone)
	assert.True(t, b.Empty(3, 2))
	assert.Equal(t, 1, b.Filled())
}

func TestBoardOutOfBounds(t *testing.T) {
	b, err := NewBoard(4, 3)
	require.NoError(t, err)

	for _, p := range []Point{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		assert.False(t, b.InBounds(p.X, p.Y))
		assert.Panics(t, func() { b.Get(p.X, p.Y) }, "get %s", p)
		assert.Panics(t, func() { b.Set(p.X, p.Y, BlockSolidBlue) }, "set %s", p)
	}
}

func TestBoardClear(t *testing.T) {
	b, err := NewBoard(4, 3)
	require.NoError(t, err)

	for x := 0; x < 4; x++ {
		b.Set(x, 2, BlockSolidGreen)
	}
	require.True(t, b.RowFilled(2))
	require.False(t, b.RowFilled(1))

	b.Clear()

	assert.Equal(t, 0, b.Filled())
	assert.False(t, b.RowFilled(2))
}

func TestBoardRemoveRow(t *testing.T) {
	b, err := NewBoard(3, 4)
	require.NoError(t, err)

	b.Set(0, 0, BlockSolidCyan)
	b.Set(1, 1, BlockSolidBlue)
	b.Set(2, 2, BlockSolidOrange)
	for x := 0; x < 3; x++ {
		b.Set(x, 3, BlockSolidRed)
	}

	b.RemoveRow(3)

	assert.Equal(t, [][]Block{
		{BlockNone, BlockNone, BlockNone},
		{BlockSolidCyan, BlockNone, BlockNone},
		{BlockNone, BlockSolidBlue, BlockNone},
		{BlockNone, BlockNone, BlockSolidOrange},
	}, b.Rows())

	b.RemoveRow(0)
	assert.Equal(t, 3, b.Filled())
	assert.Panics(t, func() { b.RemoveRow(4) })
}

func TestBoardRowsAndRender(t *testing.T) {
	b, err := NewBoard(3, 2)
	require.NoError(t, err)

	b.Set(0, 0, BlockSolidYellow)
	b.Set(2, 1, BlockSolidMagenta)

	rows := b.Rows()
	assert.Equal(t, [][]Block{
		{BlockSolidYellow, BlockNone, BlockNone},
		{BlockNone, BlockNone, BlockSolidMagenta},
	}, rows)

	// Rows is a copy.
	rows[0][1] = BlockSolidRed
	assert.True(t, b.Empty(1, 0))

	assert.Equal(t, "█  \n  █", b.Render())
}

func TestBlock(t *testing.T) {
	_, ok := BlockNone.Type()
	assert.False(t, ok)
	assert.Equal(t, "", BlockNone.Color())
	assert.Equal(t, ' ', BlockNone.Rune())

	_, ok = Block(42).Type()
	assert.False(t, ok)
	assert.Equal(t, '?', Block(42).Rune())

	typ, ok := BlockSolidOrange.Type()
	assert.True(t, ok)
	assert.Equal(t, PieceL, typ)
}
