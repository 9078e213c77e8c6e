// Package pipeline provides the enumeration pipeline for paragon.
//
// This package implements the complete load → search → stitch → store
// pipeline used by the CLI and the HTTP API. By centralizing this logic,
// both entry points share validation, caching and persistence behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read and validate the board files of a character class
//  2. Search: Enumerate every placement of the boards around the base
//  3. Stitch: Flatten each completed meta-grid into text
//  4. Store: Persist the stitched layouts (optional)
//
// Search and stitch results are cached together, keyed by the board
// contents and the options that change the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Store = store.NewFileStore("out")
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ClassDir: "classes",
//	    Class:    "paragon",
//	})
//	if err != nil && result == nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Layouts))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/cache"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/search"
	"github.com/matzehuels/paragon/pkg/stitch"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultClassDir is where class directories are looked up.
	DefaultClassDir = "classes"

	// DefaultCacheTTL is how long enumeration results stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an enumeration run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	ClassDir   string `json:"class_dir,omitempty"`
	Class      string `json:"class"`
	EdgeLength int    `json:"edge_length,omitempty"`

	// Search options
	Limit   int           `json:"limit,omitempty"`
	Workers int           `json:"workers,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty"` // zero means no deadline

	// Stitch options
	Separator string `json:"separator,omitempty"`
	Divider   rune   `json:"divider,omitempty"`

	// Refresh skips the cache lookup; the fresh result is still cached.
	Refresh  bool          `json:"refresh,omitempty"`
	CacheTTL time.Duration `json:"-"`

	// Progress receives search counters while the search runs.
	Progress func(search.Stats) `json:"-"`

	// Logger for pipeline operations.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the stored run. It is empty when no store is set.
	RunID string

	// Location is where the run was stored: a file path for file stores,
	// otherwise the run ID.
	Location string

	// Class is the enumerated character class.
	Class string

	// BoardNames lists the loaded boards, sorted.
	BoardNames []string

	// Layouts holds every stitched layout in search order.
	Layouts []stitch.Layout

	// Stats contains the search counters and stage timings.
	Stats Stats

	// CacheHit is true if the layouts came from the cache.
	CacheHit bool

	// Truncated is true if Limit stopped the search.
	Truncated bool

	// TimedOut is true if Timeout stopped the search. Timed-out results
	// are returned but not cached.
	TimedOut bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	search.Stats

	LoadTime   time.Duration
	SearchTime time.Duration
	StoreTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateClassName(o.Class); err != nil {
		return err
	}
	if o.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must be >= 0, got %d", o.Limit)
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be >= 0, got %s", o.Timeout)
	}

	if o.ClassDir == "" {
		o.ClassDir = DefaultClassDir
	}
	if o.EdgeLength <= 0 {
		o.EdgeLength = board.DefaultEdge
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Separator == "" {
		o.Separator = stitch.DefaultSeparator
	}
	if o.Divider == 0 {
		o.Divider = stitch.DefaultDivider
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SearchOptions returns the options passed to search.Enumerate.
func (o *Options) SearchOptions() search.Options {
	return search.Options{
		EdgeLength: o.EdgeLength,
		Limit:      o.Limit,
		Workers:    o.Workers,
		Progress:   o.Progress,
	}
}

// StitchOptions returns the options passed to stitch.StitchAll.
func (o *Options) StitchOptions() stitch.Options {
	return stitch.Options{
		Separator: o.Separator,
		Divider:   o.Divider,
	}
}

// LayoutKeyOpts returns the cache key options for this run.
// Workers and Timeout are left out: they do not change a complete result.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		EdgeLength: o.EdgeLength,
		Limit:      o.Limit,
		Separator:  o.Separator,
		Divider:    string(o.Divider),
	}
}
