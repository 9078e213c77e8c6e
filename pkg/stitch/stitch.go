// Package stitch flattens a completed meta-grid into printable text.
//
// Each meta-row of boards becomes E lines, one per content row, with the
// boards of the band joined by a separator. A divider line as wide as the
// stitched lines closes every band:
//
//	AB | EF
//	CD | GH
//	=======
//
// Blank cells stitch as their '-' fill; stitching does not check that a
// layout is complete.
package stitch

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/paragon/pkg/search"
)

const (
	// DefaultSeparator joins the boards of one band.
	DefaultSeparator = " | "

	// DefaultDivider fills the line closing each band.
	DefaultDivider = '='
)

// Options controls stitching. The zero value uses the defaults.
type Options struct {
	Separator string
	Divider   rune
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.Divider == 0 {
		o.Divider = DefaultDivider
	}
	return o
}

// Layout is one stitched meta-grid, line by line.
type Layout []string

// String joins the lines with newlines.
func (l Layout) String() string {
	return strings.Join(l, "\n")
}

// Width returns the rune width of the widest line.
func (l Layout) Width() int {
	w := 0
	for _, line := range l {
		w = max(w, utf8.RuneCountInString(line))
	}
	return w
}

// Stitch renders g as a Layout.
func Stitch(g *search.MetaGrid, opts Options) Layout {
	opts = opts.withDefaults()
	edge := g.Edge()
	cols := g.Cols()
	width := edge*cols + utf8.RuneCountInString(opts.Separator)*(cols-1)
	divider := strings.Repeat(string(opts.Divider), max(width, 0))

	out := make(Layout, 0, g.Rows()*(edge+1))
	parts := make([]string, cols)
	for r := range g.Rows() {
		band := g.Row(r)
		for line := range edge {
			for c, b := range band {
				parts[c] = b.Row(line)
			}
			out = append(out, strings.Join(parts, opts.Separator))
		}
		out = append(out, divider)
	}
	return out
}

// StitchAll renders every grid in order.
func StitchAll(grids []*search.MetaGrid, opts Options) []Layout {
	out := make([]Layout, len(grids))
	for i, g := range grids {
		out[i] = Stitch(g, opts)
	}
	return out
}
