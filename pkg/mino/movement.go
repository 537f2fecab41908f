package mino

import (
	"fmt"
)

// Movement validates and applies piece translations and rotations against a
// board. A rejected move leaves the piece untouched and returns false.
type Movement struct {
	board *Board
}

func NewMovement(b *Board) *Movement {
	return &Movement{board: b}
}

func (m *Movement) Board() *Board { return m.board }

// CanPlace reports whether every occupied cell of p, with the matrix's
// top-left corner at (x, y), lies on the board and on an empty cell.
func (m *Movement) CanPlace(p *Piece, x int, y int) bool {
	for i := range p.Shape {
		for j, filled := range p.Shape[i] {
			if !filled {
				continue
			}

			bx := x + j
			by := y + i

			if !m.board.InBounds(bx, by) {
				return false
			}

			if !m.board.Empty(bx, by) {
				return false
			}
		}
	}

	return true
}

func (m *Movement) MoveLeft(p *Piece) bool {
	if !m.CanPlace(p, p.X-1, p.Y) {
		return false
	}

	p.MoveLeft()
	return true
}

func (m *Movement) MoveRight(p *Piece) bool {
	if !m.CanPlace(p, p.X+1, p.Y) {
		return false
	}

	p.MoveRight()
	return true
}

// MoveDown lowers the piece by one row. A false result means the piece has
// landed and must be locked.
func (m *Movement) MoveDown(p *Piece) bool {
	if !m.CanPlace(p, p.X, p.Y+1) {
		return false
	}

	p.MoveDown()
	return true
}

// Rotate rotates the piece clockwise in place and rolls the rotation back
// when the new matrix does not fit at the unchanged position.
func (m *Movement) Rotate(p *Piece) bool {
	p.RotateCW()

	if !m.CanPlace(p, p.X, p.Y) {
		p.RotateCCW()
		return false
	}

	return true
}

// Merge writes the piece's occupied cells into the board, tagged with the
// piece's archetype.
func (m *Movement) Merge(p *Piece) error {
	cells := p.Cells()
	for _, c := range cells {
		if !m.board.InBounds(c.X, c.Y) {
			return fmt.Errorf("failed to merge %s: point %s out of bounds", p, c)
		}
		if !m.board.Empty(c.X, c.Y) {
			return fmt.Errorf("failed to merge %s: point %s already contains %d", p, c, m.board.Get(c.X, c.Y))
		}
	}

	for _, c := range cells {
		m.board.Set(c.X, c.Y, p.Block())
	}

	return nil
}
