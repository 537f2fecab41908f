package mino

import (
	"strings"
)

// Shape is an occupancy matrix, indexed [row][col]. Rows need not equal
// columns.
type Shape [][]bool

// Rows returns the number of rows in the matrix.
func (s Shape) Rows() int { return len(s) }

// Cols returns the number of columns in the matrix.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

// Copy returns a deep copy of the matrix.
func (s Shape) Copy() Shape {
	c := make(Shape, len(s))
	for i := range s {
		c[i] = make([]bool, len(s[i]))
		copy(c[i], s[i])
	}

	return c
}

// RotateCW returns the matrix rotated 90 degrees clockwise. The result has
// the dimensions swapped: new[j][rows-1-i] = old[i][j].
func (s Shape) RotateCW() Shape {
	rows, cols := s.Rows(), s.Cols()

	rotated := make(Shape, cols)
	for j := range rotated {
		rotated[j] = make([]bool, rows)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rotated[j][rows-1-i] = s[i][j]
		}
	}

	return rotated
}

// Equal reports whether both matrices have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}

	return true
}

// Size returns the number of occupied cells.
func (s Shape) Size() int {
	var n int
	for i := range s {
		for j := range s[i] {
			if s[i][j] {
				n++
			}
		}
	}

	return n
}

func (s Shape) String() string {
	var b strings.Builder
	for i := range s {
		if i > 0 {
			b.WriteRune('\n')
		}
		for j := range s[i] {
			if s[i][j] {
				b.WriteRune('X')
			} else {
				b.WriteRune('.')
			}
		}
	}

	return b.String()
}

// shapeOf builds a Shape from 0/1 rows.
func shapeOf(rows ...[]int) Shape {
	s := make(Shape, len(rows))
	for i, r := range rows {
		s[i] = make([]bool, len(r))
		for j, v := range r {
			s[i][j] = v != 0
		}
	}

	return s
}
