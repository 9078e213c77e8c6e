// Package geometry maps a board count to the shape of the meta-grid and the
// anchor cell of the base board.
//
// The tables reproduce a hand-tuned spiral-growth layout. Counts one to three
// are special cases that do not follow the closed form used from four boards
// upward:
//
//	n   dimensions   anchor
//	1   1 x 1        (0, 0)
//	2   2 x 1        (1, 0)
//	3   3 x 3        (2, 1)
//	n   2n-4 x 2n-3  (n-1, n-2)   for n >= 4
package geometry

import "github.com/matzehuels/paragon/pkg/errors"

// Dimensions returns the meta-grid row and column counts for n boards.
func Dimensions(n int) (rows, cols int, err error) {
	switch {
	case n < 1:
		return 0, 0, invalidCount(n)
	case n == 1:
		return 1, 1, nil
	case n == 2:
		return 2, 1, nil
	case n == 3:
		return 3, 3, nil
	default:
		return 2*n - 4, 2*n - 3, nil
	}
}

// Anchor returns the cell holding the base board for n boards.
func Anchor(n int) (row, col int, err error) {
	switch {
	case n < 1:
		return 0, 0, invalidCount(n)
	case n == 1:
		return 0, 0, nil
	case n == 2:
		return 1, 0, nil
	case n == 3:
		return 2, 1, nil
	default:
		return n - 1, n - 2, nil
	}
}

func invalidCount(n int) error {
	return errors.New(errors.ErrCodeInvalidConfig, "board count must be >= 1, got %d", n)
}
