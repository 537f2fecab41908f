package mino

import (
	"fmt"
)

const (
	Rotation0 = 0
	RotationR = 1
	Rotation2 = 2
	RotationL = 3

	RotationStates = 4
)

type PieceType int

const (
	PieceI PieceType = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// Archetype is a catalog entry: the canonical rotation-0 matrix of a piece
// type and the colour it is drawn with.
type Archetype struct {
	Type  PieceType
	Name  string
	Shape Shape
	Color string
}

var catalog = [...]Archetype{
	PieceI: {PieceI, "I", shapeOf([]int{1, 1, 1, 1}), "#00eeee"},
	PieceJ: {PieceJ, "J", shapeOf([]int{1, 0, 0}, []int{1, 1, 1}), "#2864ff"},
	PieceL: {PieceL, "L", shapeOf([]int{0, 0, 1}, []int{1, 1, 1}), "#ff7308"},
	PieceO: {PieceO, "O", shapeOf([]int{1, 1}, []int{1, 1}), "#dddd00"},
	PieceS: {PieceS, "S", shapeOf([]int{0, 1, 1}, []int{1, 1, 0}), "#00e900"},
	PieceT: {PieceT, "T", shapeOf([]int{0, 1, 0}, []int{1, 1, 1}), "#c000cc"},
	PieceZ: {PieceZ, "Z", shapeOf([]int{1, 1, 0}, []int{0, 1, 1}), "#ee0000"},
}

// PieceTypes returns every archetype in catalog order.
func PieceTypes() []PieceType {
	types := make([]PieceType, len(catalog))
	for i := range catalog {
		types[i] = PieceType(i)
	}

	return types
}

// Lookup returns the catalog entry for t. The returned Shape is a copy and
// may be modified freely.
func Lookup(t PieceType) (Archetype, error) {
	if t < 0 || int(t) >= len(catalog) {
		return Archetype{}, fmt.Errorf("unknown piece type %d", t)
	}

	a := catalog[t]
	a.Shape = a.Shape.Copy()
	return a, nil
}

func (t PieceType) String() string {
	if t < 0 || int(t) >= len(catalog) {
		return "Unknown"
	}

	return catalog[t].Name
}

// Block returns the cell value a locked piece of this type leaves behind.
func (t PieceType) Block() Block {
	return Block(t + 1)
}

// Piece is a falling piece: its current rotation matrix and the board
// position of the matrix's top-left corner. Piece does no bounds or
// collision checks of its own, see Movement.
type Piece struct {
	Point
	Type     PieceType
	Shape    Shape
	Rotation int
}

// NewPiece creates a piece of type t centred horizontally on a board of the
// given width, on the top row.
func NewPiece(t PieceType, boardWidth int) (*Piece, error) {
	a, err := Lookup(t)
	if err != nil {
		return nil, err
	}

	p := &Piece{Type: t, Shape: a.Shape}
	p.X = boardWidth/2 - a.Shape.Cols()/2
	p.Y = 0

	return p, nil
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s r%d", p.Type, p.Point, p.Rotation)
}

func (p *Piece) Width() int  { return p.Shape.Cols() }
func (p *Piece) Height() int { return p.Shape.Rows() }

func (p *Piece) Block() Block { return p.Type.Block() }

func (p *Piece) MoveLeft()  { p.X-- }
func (p *Piece) MoveRight() { p.X++ }
func (p *Piece) MoveDown()  { p.Y++ }

// RotateCW rotates the matrix 90 degrees clockwise around its top-left
// corner. The position is not adjusted.
func (p *Piece) RotateCW() {
	p.Shape = p.Shape.RotateCW()
	p.Rotation = (p.Rotation + 1) % RotationStates
}

// RotateCCW undoes RotateCW by applying three clockwise rotations.
func (p *Piece) RotateCCW() {
	for i := 0; i < RotationStates-1; i++ {
		p.RotateCW()
	}
}

// Cells returns the board coordinates of every occupied cell at the piece's
// current position.
func (p *Piece) Cells() []Point {
	return p.CellsAt(p.Point)
}

// CellsAt returns the board coordinates the piece would occupy with its
// top-left corner at loc.
func (p *Piece) CellsAt(loc Point) []Point {
	cells := make([]Point, 0, p.Shape.Size())
	for i := range p.Shape {
		for j, filled := range p.Shape[i] {
			if filled {
				cells = append(cells, Point{loc.X + j, loc.Y + i})
			}
		}
	}

	return cells
}

// Copy returns an independent copy of the piece.
func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}

	c := *p
	c.Shape = p.Shape.Copy()
	return &c
}
