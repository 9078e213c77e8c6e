package search

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/geometry"
)

// progressInterval is the number of placements between Progress callbacks.
const progressInterval = 1 << 14

// Options controls an enumeration.
type Options struct {
	// EdgeLength is the required board edge. Zero means board.DefaultEdge.
	EdgeLength int

	// Limit stops the search after this many layouts. Zero or negative
	// means no limit.
	Limit int

	// Workers spreads the first placement level over this many goroutines.
	// Values <= 1 run sequentially. Result order does not depend on Workers.
	Workers int

	// Progress, if set, is called periodically with running counters and
	// once when the search finishes. It is only called from the goroutine
	// that invoked Enumerate.
	Progress func(Stats)
}

func (o Options) withDefaults() Options {
	if o.EdgeLength <= 0 {
		o.EdgeLength = board.DefaultEdge
	}
	return o
}

// Stats reports search counters.
type Stats struct {
	Placements int           // boards placed into a cell, over all branches
	Pruned     int           // branches abandoned on an occupied cell
	Recorded   int           // completed layouts recorded
	Duration   time.Duration // wall time of the search
}

func (s *Stats) add(o Stats) {
	s.Placements += o.Placements
	s.Pruned += o.Pruned
	s.Recorded += o.Recorded
}

// Result holds the completed layouts of an enumeration.
type Result struct {
	Grids     []*MetaGrid
	Stats     Stats
	Truncated bool // Options.Limit was reached
}

// Enumerate places every non-base board around the base board in every
// rotation and returns each completed meta-grid.
//
// Configuration problems are reported before the search starts: a missing
// base board or an empty board set yields errors.ErrCodeInvalidConfig, and a
// board that is not EdgeLength × EdgeLength yields errors.ErrCodeInvalidShape.
//
// If ctx is cancelled mid-search, Enumerate returns the layouts recorded so
// far together with the context error.
func Enumerate(ctx context.Context, boards map[string]board.Board, opts Options) (*Result, error) {
	start := time.Now()
	opts = opts.withDefaults()

	base, ok := boards[board.BaseName]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no %q board among %d boards", board.BaseName, len(boards))
	}

	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	slices.Sort(names)

	others := make([]board.Board, 0, len(boards))
	for _, name := range names {
		b := boards[name]
		if b.Name() != name {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "board keyed %q is named %q", name, b.Name())
		}
		if b.IsBlank() {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "board name %q is reserved", board.BlankName)
		}
		if err := b.Validate(opts.EdgeLength); err != nil {
			return nil, err
		}
		if !b.IsBase() {
			others = append(others, b)
		}
	}

	grid, row, col, err := initialGrid(len(boards), opts.EdgeLength)
	if err != nil {
		return nil, err
	}
	grid.Set(row, col, base)
	queue := NewQueue(others...)

	var res *Result
	if opts.Workers > 1 && queue.Len() > 0 {
		res, err = enumerateParallel(ctx, row-1, col, queue, grid, opts)
	} else {
		s := newSearcher(ctx, opts.Limit, opts.Progress)
		s.visit(row-1, col, queue, grid)
		res, err = s.result(), s.err
	}

	res.Stats.Duration = time.Since(start)
	if opts.Progress != nil {
		opts.Progress(res.Stats)
	}
	return res, err
}

// initialGrid builds the blank meta-grid for n boards and returns the anchor.
func initialGrid(n, edge int) (*MetaGrid, int, int, error) {
	rows, cols, err := geometry.Dimensions(n)
	if err != nil {
		return nil, 0, 0, err
	}
	row, col, err := geometry.Anchor(n)
	if err != nil {
		return nil, 0, 0, err
	}
	return NewMetaGrid(rows, cols, edge), row, col, nil
}

// directions lists the expansion order: down, up, right, left.
var directions = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// searcher runs one depth-first enumeration and owns its result slice.
type searcher struct {
	ctx       context.Context
	limit     int
	progress  func(Stats)
	grids     []*MetaGrid
	stats     Stats
	truncated bool
	err       error
}

func newSearcher(ctx context.Context, limit int, progress func(Stats)) *searcher {
	return &searcher{ctx: ctx, limit: limit, progress: progress}
}

// visit tries every queued board in every rotation at (row, col).
func (s *searcher) visit(row, col int, queue Queue, grid *MetaGrid) {
	if s.halted() {
		return
	}
	if queue.Len() == 0 {
		s.record(grid)
		return
	}
	// Only the start cell can be out of bounds; expand checks the rest.
	if !grid.InBounds(row, col) {
		return
	}
	if !grid.At(row, col).IsBlank() {
		s.stats.Pruned++
		return
	}

	for _, b := range queue.Boards() {
		rest := queue.Without(b.Name())
		for k := range 4 {
			if s.halted() {
				return
			}
			s.place(row, col, b.Rotate(k), rest, grid)
		}
	}
}

// place puts b at (row, col) in a copy of grid and explores its neighbours.
func (s *searcher) place(row, col int, b board.Board, rest Queue, grid *MetaGrid) {
	m := grid.Clone()
	m.Set(row, col, b)
	s.stats.Placements++
	if s.progress != nil && s.stats.Placements%progressInterval == 0 {
		s.progress(s.stats)
	}

	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if m.InBounds(r, c) {
			s.visit(r, c, rest, m)
		}
	}
}

func (s *searcher) record(grid *MetaGrid) {
	s.grids = append(s.grids, grid.Clone())
	s.stats.Recorded++
	if s.limit > 0 && len(s.grids) >= s.limit {
		s.truncated = true
	}
}

// halted reports whether the search must stop: the limit was reached or
// the context is done.
func (s *searcher) halted() bool {
	if s.truncated || s.err != nil {
		return true
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return true
	}
	return false
}

func (s *searcher) result() *Result {
	return &Result{Grids: s.grids, Stats: s.stats, Truncated: s.truncated}
}

// enumerateParallel runs each first-level (board, rotation) branch in its own
// searcher and concatenates the partitioned results in branch order.
func enumerateParallel(ctx context.Context, row, col int, queue Queue, grid *MetaGrid, opts Options) (*Result, error) {
	if !grid.InBounds(row, col) {
		return &Result{}, nil
	}
	if !grid.At(row, col).IsBlank() {
		return &Result{Stats: Stats{Pruned: 1}}, nil
	}

	type branch struct {
		b    board.Board
		rest Queue
	}
	var branches []branch
	for _, b := range queue.Boards() {
		rest := queue.Without(b.Name())
		for k := range 4 {
			branches = append(branches, branch{b: b.Rotate(k), rest: rest})
		}
	}

	searchers := make([]*searcher, len(branches))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, br := range branches {
		s := newSearcher(ctx, opts.Limit, nil)
		searchers[i] = s
		g.Go(func() error {
			if s.halted() {
				return s.err
			}
			s.place(row, col, br.b, br.rest, grid)
			return s.err
		})
	}
	err := g.Wait()

	res := &Result{}
	for _, s := range searchers {
		res.Grids = append(res.Grids, s.grids...)
		res.Stats.add(s.stats)
	}
	if opts.Limit > 0 && len(res.Grids) >= opts.Limit {
		res.Grids = res.Grids[:opts.Limit]
		res.Stats.Recorded = opts.Limit
		res.Truncated = true
	}
	return res, err
}
