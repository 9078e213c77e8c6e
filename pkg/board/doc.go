// Package board provides the immutable square tile-grid placed by the
// enumeration search.
//
// # Overview
//
// A [Board] is a named E×E matrix of single-character symbols. The symbol
// alphabet (S start, G gate, L legendary, Y glyph, R/r rare, M/m magic,
// N/n normal, - empty) is opaque here: rotation and placement treat every
// cell as an uninterpreted rune.
//
// Boards are values. [Board.Rotate] and [Board.Copy] return new boards and
// never touch the receiver, so a board can be shared freely between search
// branches.
//
// # Rotation
//
// One clockwise quarter-turn reverses the row order and then transposes:
//
//	AB      CA
//	CD  ->  DB
//
// Rotation counts are reduced mod 4 before use, so Rotate(4) is the identity
// and Rotate(k) equals Rotate(k+4) for every k, including negative k.
//
// # Special Boards
//
// Two names are reserved: [BaseName] marks the board held at the anchor of
// the meta-grid, and [BlankName] marks the placeholder filling empty cells
// (see [Blank]).
package board
