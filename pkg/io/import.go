package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/errors"
)

// BoardExt is the extension of board files.
const BoardExt = ".txt"

// ReadBoard decodes one board from r. Surrounding whitespace is trimmed from
// every row. The board is not validated; see [board.Board.Validate].
func ReadBoard(r io.Reader, name string) (board.Board, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return board.Board{}, fmt.Errorf("read board %s: %w", name, err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return board.New(name, rows), nil
}

// ImportBoard reads a board file. The board is named after the file.
func ImportBoard(path string) (board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return board.Board{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return board.Board{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBoard(f, strings.TrimSuffix(filepath.Base(path), BoardExt))
}

// LoadClass reads every board of class under dir and validates each against
// edge. It fails if the class directory is missing, if a board has the wrong
// shape, or if there is no base board.
func LoadClass(dir, class string, edge int) (map[string]board.Board, error) {
	if err := errors.ValidateClassName(class); err != nil {
		return nil, err
	}

	classDir := filepath.Join(dir, class)
	entries, err := os.ReadDir(classDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory for character class %q does not exist", class)
		}
		return nil, fmt.Errorf("read %s: %w", classDir, err)
	}

	boards := make(map[string]board.Board)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != BoardExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), BoardExt)
		if err := errors.ValidateBoardName(name); err != nil {
			return nil, err
		}
		if name == board.BlankName {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "board name %q is reserved", name)
		}

		b, err := ImportBoard(filepath.Join(classDir, e.Name()))
		if err != nil {
			return nil, err
		}
		if err := b.Validate(edge); err != nil {
			return nil, err
		}
		boards[name] = b
	}

	if _, ok := boards[board.BaseName]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no %q board loaded for class %q", board.BaseName, class)
	}
	return boards, nil
}

// ListClasses returns the names of the class directories under dir, sorted.
func ListClasses(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "class directory %s", dir)
		}
		return nil, err
	}
	var classes []string
	for _, e := range entries {
		if e.IsDir() && errors.ValidateClassName(e.Name()) == nil {
			classes = append(classes, e.Name())
		}
	}
	slices.Sort(classes)
	return classes, nil
}
