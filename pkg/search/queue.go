package search

import (
	"slices"
	"strings"

	"github.com/matzehuels/paragon/pkg/board"
)

// Queue holds the boards not yet placed in a branch. It is keyed by board
// name and iterates in name order. Queues are values: Without returns a new
// queue and leaves the receiver untouched.
type Queue struct {
	boards []board.Board
}

// NewQueue creates a queue from boards. A later board replaces an earlier
// one with the same name.
func NewQueue(boards ...board.Board) Queue {
	byName := make(map[string]board.Board, len(boards))
	for _, b := range boards {
		byName[b.Name()] = b
	}
	q := Queue{boards: make([]board.Board, 0, len(byName))}
	for _, b := range byName {
		q.boards = append(q.boards, b)
	}
	slices.SortFunc(q.boards, func(a, b board.Board) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return q
}

// Len returns the number of queued boards.
func (q Queue) Len() int { return len(q.boards) }

// Boards returns the queued boards in name order.
func (q Queue) Boards() []board.Board { return slices.Clone(q.boards) }

// Contains reports whether a board with the given name is queued.
func (q Queue) Contains(name string) bool {
	return slices.ContainsFunc(q.boards, func(b board.Board) bool { return b.Name() == name })
}

// Without returns a copy of q with the named board removed.
func (q Queue) Without(name string) Queue {
	out := make([]board.Board, 0, len(q.boards))
	for _, b := range q.boards {
		if b.Name() != name {
			out = append(out, b)
		}
	}
	return Queue{boards: out}
}
