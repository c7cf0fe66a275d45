// Package layout maps 2-D matrix coordinates onto linear LED indices.
package layout

import (
	"errors"
	"fmt"
)

// ErrShape reports a coordinate map that is empty or ragged.
var ErrShape = errors.New("invalid coordinate map shape")

// Options describes how a strip is wired behind a matrix.
type Options struct {
	// Serpentine wiring reverses every odd row.
	Serpentine bool
	// Offset is added to every index, for building sub-maps.
	Offset int
	// Rotation in degrees. Values that are not a multiple of 90 degrade to
	// the nearest lower quarter turn.
	Rotation int
	// YFlip reverses row order after rotation.
	YFlip bool
}

// Position is a physical pixel location.
type Position struct{ X, Y, Z int }

// Map is an immutable row-major table, At(x, y) = cells[y*width+x].
type Map struct {
	width  int
	height int
	cells  []int
}

// New generates a map for a width x height matrix.
func New(width, height int, o Options) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, width, height)
	}
	m := &Map{width: width, height: height, cells: make([]int, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !o.Serpentine || y%2 == 0 {
				m.cells[y*width+x] = width*y + x + o.Offset
			} else {
				m.cells[y*width+x] = width*(y+1) - 1 - x + o.Offset
			}
		}
	}
	return m.RotateAndFlip(o.Rotation, o.YFlip), nil
}

// FromRows builds a map from explicit rows, rows[y][x] = index. Every row
// must have the same non-zero length. Indices are taken as given.
func FromRows(rows [][]int) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrShape)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrShape)
	}
	m := &Map{width: width, height: len(rows), cells: make([]int, 0, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrShape, y, len(row), width)
		}
		m.cells = append(m.cells, row...)
	}
	return m, nil
}

// RotateAndFlip returns a new map turned clockwise-negative by rotation
// degrees, optionally flipped along Y.
func (m *Map) RotateAndFlip(rotation int, flip bool) *Map {
	out := m
	turns := (((-rotation % 360) + 360) % 360) / 90
	for i := 0; i < turns; i++ {
		out = out.quarterTurn()
	}
	if flip {
		out = out.flipRows()
	}
	return out
}

// quarterTurn is the transpose of the row-reversed map.
func (m *Map) quarterTurn() *Map {
	w, h := m.height, m.width
	out := &Map{width: w, height: h, cells: make([]int, len(m.cells))}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.cells[y*w+x] = m.cells[(m.height-1-x)*m.width+y]
		}
	}
	return out
}

func (m *Map) flipRows() *Map {
	out := &Map{width: m.width, height: m.height, cells: make([]int, len(m.cells))}
	for y := 0; y < m.height; y++ {
		copy(out.cells[y*m.width:(y+1)*m.width], m.cells[(m.height-1-y)*m.width:(m.height-y)*m.width])
	}
	return out
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }
func (m *Map) Len() int    { return len(m.cells) }

// At returns the linear index for (x, y). The caller keeps x, y in range.
func (m *Map) At(x, y int) int {
	return m.cells[y*m.width+x]
}

// Contains reports whether (x, y) lies on the map.
func (m *Map) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Rows returns a copy as rows[y][x].
func (m *Map) Rows() [][]int {
	rows := make([][]int, m.height)
	for y := range rows {
		rows[y] = append([]int(nil), m.cells[y*m.width:(y+1)*m.width]...)
	}
	return rows
}

// MaxIndex is the largest index in the map.
func (m *Map) MaxIndex() int {
	hi := -1
	for _, v := range m.cells {
		if v > hi {
			hi = v
		}
	}
	return hi
}

// Positions inverts the map: out[index] = (x, y, 0). Indices outside
// [0, n) are skipped.
func (m *Map) Positions(n int) []Position {
	out := make([]Position, n)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if i := m.cells[y*m.width+x]; i >= 0 && i < n {
				out[i] = Position{X: x, Y: y}
			}
		}
	}
	return out
}

// Strip returns positions for an unmapped 1-D strip.
func Strip(n int) []Position {
	out := make([]Position, n)
	for i := range out {
		out[i] = Position{X: i}
	}
	return out
}
