// Package io reads board definitions and reads and writes stitched layouts
// as plain text.
//
// # Board Files
//
// A character class is a directory of board files, one board per ".txt"
// file. The board name is the file name without its extension, and one
// board must be named "base":
//
//	classes/
//	  sorcerer/
//	    base.txt
//	    ceaseless-conduit.txt
//	    searing-heat.txt
//
// Each file holds exactly E lines of exactly E symbols. Trailing whitespace
// (including "\r") is trimmed from every line and trailing empty lines are
// ignored. Shape violations are rejected with [errors.ErrCodeInvalidShape]
// rather than padded or truncated:
//
//	boards, err := io.LoadClass("classes", "sorcerer", 21)
//
// # Stitched Layouts
//
// [WriteLayouts] writes each layout line by line followed by two empty
// lines, so layouts are separated by a blank block. [ReadLayouts] reverses
// it:
//
//	AB | EF
//	CD | GH
//	=======
//
//
//	EF | AB
//	...
//
// [errors.ErrCodeInvalidShape]: github.com/matzehuels/paragon/pkg/errors.ErrCodeInvalidShape
package io
