package board

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/paragon/pkg/errors"
)

const (
	// BaseName is the reserved name of the board fixed at the anchor.
	BaseName = "base"

	// BlankName is the reserved name of the empty-cell placeholder.
	BlankName = "blank"

	// BlankSymbol fills every cell of a blank board.
	BlankSymbol = '-'

	// DefaultEdge is the edge length of a paragon board.
	DefaultEdge = 21
)

// Board is a named square grid of symbols. The zero value is an unnamed,
// empty board.
type Board struct {
	name string
	rows []string
}

// New creates a board from its rows. The rows slice is copied; strings are
// immutable, so the board shares no mutable storage with the caller.
func New(name string, rows []string) Board {
	return Board{name: name, rows: slices.Clone(rows)}
}

// Blank returns the placeholder board of the given edge length.
func Blank(edge int) Board {
	row := strings.Repeat(string(BlankSymbol), max(edge, 0))
	rows := make([]string, max(edge, 0))
	for i := range rows {
		rows[i] = row
	}
	return Board{name: BlankName, rows: rows}
}

// Name returns the board's identity.
func (b Board) Name() string { return b.name }

// IsBase reports whether b is the distinguished base board.
func (b Board) IsBase() bool { return b.name == BaseName }

// IsBlank reports whether b is the empty-cell placeholder.
func (b Board) IsBlank() bool { return b.name == BlankName }

// Edge returns the number of rows.
func (b Board) Edge() int { return len(b.rows) }

// Rows returns a copy of the board's rows.
func (b Board) Rows() []string { return slices.Clone(b.rows) }

// Row returns row i. It panics if i is out of range.
func (b Board) Row(i int) string { return b.rows[i] }

// Cell returns the symbol at (r, c).
func (b Board) Cell(r, c int) rune {
	return []rune(b.rows[r])[c]
}

// Rotate returns a copy of b rotated clockwise by 90°×k.
func (b Board) Rotate(k int) Board {
	k = ((k % 4) + 4) % 4
	grid := b.runes()
	for range k {
		grid = rotateOnce(grid)
	}
	rows := make([]string, len(grid))
	for i, r := range grid {
		rows[i] = string(r)
	}
	return Board{name: b.name, rows: rows}
}

// rotateOnce performs a clockwise quarter-turn: reverse rows, then transpose.
func rotateOnce(grid [][]rune) [][]rune {
	n := len(grid)
	if n == 0 {
		return grid
	}
	width := len(grid[0])
	out := make([][]rune, width)
	for c := range width {
		out[c] = make([]rune, n)
		for r := range n {
			out[c][r] = grid[n-1-r][c]
		}
	}
	return out
}

// Copy returns an independent duplicate of b.
func (b Board) Copy() Board {
	return Board{name: b.name, rows: slices.Clone(b.rows)}
}

// Equal reports whether a and b have the same name and content.
func (b Board) Equal(other Board) bool {
	return b.name == other.name && slices.Equal(b.rows, other.rows)
}

// SameContent reports whether a and b hold identical symbols, ignoring names.
func (b Board) SameContent(other Board) bool {
	return slices.Equal(b.rows, other.rows)
}

// Validate checks that b is exactly edge × edge. Widths are counted in
// runes. The error names the board and the first offending row.
func (b Board) Validate(edge int) error {
	if len(b.rows) != edge {
		return errors.New(errors.ErrCodeInvalidShape,
			"board %q: expected %d rows, found %d", b.name, edge, len(b.rows))
	}
	for i, row := range b.rows {
		if n := utf8.RuneCountInString(row); n != edge {
			return errors.New(errors.ErrCodeInvalidShape,
				"board %q: row %d expected to have %d characters, found %d", b.name, i+1, edge, n)
		}
	}
	return nil
}

// String renders the board one row per line.
func (b Board) String() string {
	return strings.Join(b.rows, "\n")
}

func (b Board) runes() [][]rune {
	grid := make([][]rune, len(b.rows))
	for i, row := range b.rows {
		grid[i] = []rune(row)
	}
	return grid
}
