package search

import (
	"slices"
	"strings"

	"github.com/matzehuels/paragon/pkg/board"
)

// MetaGrid is a rows × cols grid of boards. Empty cells hold the blank board.
type MetaGrid struct {
	rows, cols int
	edge       int
	cells      []board.Board
}

// NewMetaGrid creates a grid with every cell blank.
func NewMetaGrid(rows, cols, edge int) *MetaGrid {
	blank := board.Blank(edge)
	cells := make([]board.Board, rows*cols)
	for i := range cells {
		cells[i] = blank
	}
	return &MetaGrid{rows: rows, cols: cols, edge: edge, cells: cells}
}

// Rows returns the number of board rows.
func (g *MetaGrid) Rows() int { return g.rows }

// Cols returns the number of board columns.
func (g *MetaGrid) Cols() int { return g.cols }

// Edge returns the board edge length the grid was created with.
func (g *MetaGrid) Edge() int { return g.edge }

// InBounds reports whether (r, c) is a cell of the grid.
func (g *MetaGrid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the board at (r, c). It panics if the cell is out of bounds.
func (g *MetaGrid) At(r, c int) board.Board {
	return g.cells[g.index(r, c)]
}

// Set places b at (r, c). It panics if the cell is out of bounds.
func (g *MetaGrid) Set(r, c int, b board.Board) {
	g.cells[g.index(r, c)] = b
}

// Row returns the boards of meta-row r, left to right.
func (g *MetaGrid) Row(r int) []board.Board {
	return slices.Clone(g.cells[r*g.cols : (r+1)*g.cols])
}

// Clone returns an independent copy. Boards are immutable values, so copying
// the cell slice is enough to isolate the clone from later Set calls.
func (g *MetaGrid) Clone() *MetaGrid {
	return &MetaGrid{
		rows:  g.rows,
		cols:  g.cols,
		edge:  g.edge,
		cells: slices.Clone(g.cells),
	}
}

// Placed returns the number of non-blank cells.
func (g *MetaGrid) Placed() int {
	n := 0
	for _, b := range g.cells {
		if !b.IsBlank() {
			n++
		}
	}
	return n
}

// Names returns the names of the placed boards in row-major order.
func (g *MetaGrid) Names() []string {
	var names []string
	for _, b := range g.cells {
		if !b.IsBlank() {
			names = append(names, b.Name())
		}
	}
	return names
}

// Find returns the cell holding the board with the given name.
func (g *MetaGrid) Find(name string) (r, c int, ok bool) {
	for i, b := range g.cells {
		if b.Name() == name {
			return i / g.cols, i % g.cols, true
		}
	}
	return 0, 0, false
}

// String renders the grid as board names, one meta-row per line.
func (g *MetaGrid) String() string {
	var sb strings.Builder
	for r := range g.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.At(r, c).Name())
		}
	}
	return sb.String()
}

func (g *MetaGrid) index(r, c int) int {
	if !g.InBounds(r, c) {
		panic("search: cell out of bounds")
	}
	return r*g.cols + c
}
