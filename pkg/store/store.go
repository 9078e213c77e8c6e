// Package store persists enumeration runs.
//
// A [Run] is the output of one enumeration: the stitched layouts of a
// character class plus the metadata needed to find them again. Two backends
// are provided:
//
//   - [FileStore] writes the layouts as a timestamped text file
//   - [MongoStore] inserts one document per run into a MongoDB collection
//
// Store failures never modify the run being saved, so callers can report the
// error and still hand the in-memory layouts to the user.
package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/paragon/pkg/stitch"
)

// Store saves enumeration runs.
type Store interface {
	// Save persists run. It must not modify run.
	Save(ctx context.Context, run *Run) error

	// Close releases any resources held by the store.
	Close() error
}

// Run is a single enumeration result.
type Run struct {
	ID         uuid.UUID
	Class      string
	CreatedAt  time.Time
	BoardNames []string
	Layouts    []stitch.Layout
}

// NewRun creates a run with a fresh ID and the current time.
func NewRun(class string, boardNames []string, layouts []stitch.Layout) *Run {
	names := slices.Clone(boardNames)
	slices.Sort(names)
	return &Run{
		ID:         uuid.New(),
		Class:      class,
		CreatedAt:  time.Now(),
		BoardNames: names,
		Layouts:    layouts,
	}
}

// NullStore discards every run.
type NullStore struct{}

// NewNullStore returns a store that does nothing.
func NewNullStore() Store { return NullStore{} }

func (NullStore) Save(context.Context, *Run) error { return nil }
func (NullStore) Close() error                      { return nil }

var _ Store = NullStore{}
