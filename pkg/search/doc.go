// Package search enumerates every placement of a set of boards into the
// meta-grid.
//
// # Overview
//
// The base board is fixed at the anchor given by [geometry.Anchor]. The
// remaining boards form a [Queue]. Starting from the cell directly above the
// anchor, the search places every queued board in every rotation, then
// expands into the four neighbouring cells of the placement. A branch ends
// when the queue is empty (a completed layout is recorded) or when the
// target cell is already occupied (the branch is pruned).
//
//	          (r-1,c)
//	             ^
//	(r,c-1) < (r,c) > (r,c+1)
//	             v
//	          (r+1,c)
//
// All four directions are explored from every placement, so the frontier
// grows outward from the anchor in every direction at once rather than
// along a single path.
//
// # Copy On Branch
//
// Every branch works on its own [MetaGrid.Clone] and its own [Queue]. Sibling
// branches never observe each other's placements, and recorded layouts are
// independent copies that later branches cannot alter.
//
// # Cost
//
// The search is exhaustive: (boards × 4 rotations) choices per level with up
// to four directions each, and no symmetry pruning. Layouts reachable through
// different expansion orders are recorded once per path. This is tractable
// for small board counts only; use [Options.Limit], a context deadline, or
// [Options.Workers] to bound or spread the work.
//
// # Usage
//
//	boards := map[string]board.Board{
//	    "base": board.New("base", baseRows),
//	    "gate": board.New("gate", gateRows),
//	}
//	res, err := search.Enumerate(ctx, boards, search.Options{EdgeLength: 21})
//	if err != nil {
//	    return err
//	}
//	for _, g := range res.Grids {
//	    fmt.Println(g.Names())
//	}
//
// [geometry.Anchor]: github.com/matzehuels/paragon/pkg/geometry.Anchor
package search
