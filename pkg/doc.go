// Package pkg provides the core libraries for paragon board-layout enumeration.
//
// # Overview
//
// Paragon takes the boards of a character class, each a square grid of
// symbols, and finds every way to place them edge to edge around the
// class's base board, trying each board in all four rotations. The pkg
// directory is organized into three areas:
//
//  1. Domain logic: [board], [geometry], [search], [stitch]
//  2. Infrastructure: [io], [config], [cache], [store], [observability]
//  3. Orchestration: [pipeline] (load → search → stitch → store), [server]
//
// # Architecture
//
// The typical data flow through paragon:
//
//	Board files (<class_dir>/<class>/*.txt)
//	         ↓
//	    [io] package (read + validate boards)
//	         ↓
//	    [search] package (meta-grid placement search)
//	         ↓
//	    [stitch] package (meta-grid → text)
//	         ↓
//	    [store] package (timestamped file or MongoDB)
//
// # Quick Start
//
//	boards, _ := io.LoadClass("classes", "paragon", board.DefaultEdge)
//	res, _ := search.Enumerate(ctx, boards, search.Options{Limit: 100})
//	layouts := stitch.StitchAll(res.Grids, stitch.Options{})
//	_ = io.WriteLayouts(os.Stdout, layouts)
//
// Or run everything, with caching, through a [pipeline.Runner].
//
// # Error Handling
//
// All packages return errors from [errors] with a machine-readable code.
// Configuration problems (no base board, wrong board count) carry
// INVALID_CONFIG and malformed boards carry INVALID_SHAPE; both are
// reported before a search starts.
package pkg
