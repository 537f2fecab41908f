package mino

import (
	"fmt"
	"strings"

	"github.com/kamstrup/intmap"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the fixed grid of settled cells. Empty cells are not stored.
type Board struct {
	W int // Width
	H int // Height

	cells *intmap.Map[int, Block]
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

func NewBoard(w int, h int) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", w, h)
	}

	return &Board{W: w, H: h, cells: intmap.New[int, Block](w * h)}, nil
}

func (b *Board) Width() int  { return b.W }
func (b *Board) Height() int { return b.H }

func (b *Board) InBounds(x int, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

func (b *Board) mustInBounds(x int, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board access out of bounds: (%d,%d) on %dx%d board", x, y, b.W, b.H))
	}
}

// Get returns the cell at (x, y). It panics when the coordinate is outside
// the board.
func (b *Board) Get(x int, y int) Block {
	b.mustInBounds(x, y)

	v, _ := b.cells.Get(I(x, y, b.W))
	return v
}

// Set stores v at (x, y). It panics when the coordinate is outside the
// board; callers validate with InBounds first.
func (b *Board) Set(x int, y int, v Block) {
	b.mustInBounds(x, y)

	if v == BlockNone {
		b.cells.Del(I(x, y, b.W))
		return
	}

	b.cells.Put(I(x, y, b.W), v)
}

func (b *Board) Empty(x int, y int) bool {
	return b.Get(x, y) == BlockNone
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = intmap.New[int, Block](b.W * b.H)
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	return b.cells.Len()
}

// RowFilled reports whether every cell of row y is occupied.
func (b *Board) RowFilled(y int) bool {
	for x := 0; x < b.W; x++ {
		if b.Empty(x, y) {
			return false
		}
	}

	return true
}

// RemoveRow deletes row y: every row above it moves down one rank and row 0
// becomes empty.
func (b *Board) RemoveRow(y int) {
	b.mustInBounds(0, y)

	for r := y; r > 0; r-- {
		for x := 0; x < b.W; x++ {
			b.Set(x, r, b.Get(x, r-1))
		}
	}

	for x := 0; x < b.W; x++ {
		b.Set(x, 0, BlockNone)
	}
}

// Rows returns a copy of the grid indexed [y][x].
func (b *Board) Rows() [][]Block {
	rows := make([][]Block, b.H)
	for y := range rows {
		rows[y] = make([]Block, b.W)
		for x := range rows[y] {
			rows[y][x] = b.Get(x, y)
		}
	}

	return rows
}

// Render returns the board as text, top row first.
func (b *Board) Render() string {
	var s strings.Builder

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s.WriteRune(b.Get(x, y).Rune())
		}

		if y == b.H-1 {
			break
		}

		s.WriteRune('\n')
	}

	return s.String()
}
