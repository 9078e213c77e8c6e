package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/cache"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/io"
	"github.com/matzehuels/paragon/pkg/observability"
	"github.com/matzehuels/paragon/pkg/search"
	"github.com/matzehuels/paragon/pkg/stitch"
	"github.com/matzehuels/paragon/pkg/store"
)

// cacheKeyType labels layout entries for cache hooks.
const cacheKeyType = "layout"

// Runner encapsulates pipeline execution with caching and persistence.
// Both CLI and API use this to avoid duplicating that logic.
//
// The Runner is stateless except for its backends and logger - it doesn't
// keep results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // nil disables persistence
	Logger *log.Logger

	// StoreName labels the store in hooks and logs.
	StoreName string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedLayouts is the cached form of a search and stitch result.
type cachedLayouts struct {
	Layouts   []stitch.Layout `json:"layouts"`
	Stats     search.Stats    `json:"stats"`
	Truncated bool            `json:"truncated"`
}

// Execute runs the complete load → search → stitch → store pipeline.
//
// A store failure does not discard the enumeration: Execute returns the
// result together with an errors.ErrCodeStoreFailed error. Cancellation of
// ctx returns the layouts found so far together with the context error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Class: opts.Class}

	// Stage 1: Load
	loadStart := time.Now()
	boards, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.BoardNames = slices.Sorted(maps.Keys(boards))

	opts.Logger.Info("loaded boards",
		"class", opts.Class,
		"boards", len(boards),
		"duration", result.Stats.LoadTime)

	// Stage 2+3: Search and stitch
	searchStart := time.Now()
	err = r.enumerate(ctx, boards, opts, result)
	result.Stats.SearchTime = time.Since(searchStart)
	if err != nil {
		return result, err
	}

	opts.Logger.Info("enumerated layouts",
		"layouts", len(result.Layouts),
		"cached", result.CacheHit,
		"truncated", result.Truncated,
		"duration", result.Stats.SearchTime)

	// Stage 4: Store
	if r.Store != nil {
		storeStart := time.Now()
		err := r.save(ctx, result)
		result.Stats.StoreTime = time.Since(storeStart)
		if err != nil {
			opts.Logger.Error("store failed", "store", r.StoreName, "error", err)
			return result, err
		}
	}

	return result, nil
}

// Load reads and validates the boards of opts.Class.
func (r *Runner) Load(ctx context.Context, opts Options) (map[string]board.Board, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Class)

	start := time.Now()
	boards, err := io.LoadClass(opts.ClassDir, opts.Class, opts.EdgeLength)
	hooks.OnLoadComplete(ctx, opts.Class, len(boards), time.Since(start), err)
	return boards, err
}

func (r *Runner) enumerate(ctx context.Context, boards map[string]board.Board, opts Options, result *Result) error {
	key := r.Keyer.LayoutKey(cache.HashBoards(boards), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Layouts = cached.Layouts
			result.Stats.Stats = cached.Stats
			result.Truncated = cached.Truncated
			result.CacheHit = true
			return nil
		}
	}

	searchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	hooks := observability.Pipeline()
	hooks.OnSearchStart(ctx, opts.Class, len(boards))
	res, err := search.Enumerate(searchCtx, boards, opts.SearchOptions())

	var layouts int
	if res != nil {
		result.Layouts = stitch.StitchAll(res.Grids, opts.StitchOptions())
		result.Stats.Stats = res.Stats
		result.Truncated = res.Truncated
		layouts = len(result.Layouts)
	}
	hooks.OnSearchComplete(ctx, opts.Class, layouts, result.Stats.Duration, err)

	switch {
	case err == nil:
	case stderrors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		result.TimedOut = true
		opts.Logger.Warn("search timed out", "timeout", opts.Timeout, "layouts", layouts)
		return nil
	default:
		return err
	}

	r.remember(ctx, key, cachedLayouts{
		Layouts:   result.Layouts,
		Stats:     result.Stats.Stats,
		Truncated: result.Truncated,
	}, opts.CacheTTL)
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedLayouts, bool) {
	var cached cachedLayouts
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		// Unreadable entries fall through to recompute.
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return cached, true
}

func (r *Runner) remember(ctx context.Context, key string, value cachedLayouts, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache set failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) save(ctx context.Context, result *Result) error {
	run := store.NewRun(result.Class, result.BoardNames, result.Layouts)
	start := time.Now()
	err := r.Store.Save(ctx, run)
	observability.Pipeline().OnStoreComplete(ctx, r.StoreName, len(run.Layouts), time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeStoreFailed, err, "save run")
		}
		return err
	}
	result.RunID = run.ID.String()
	result.Location = result.RunID
	if fs, ok := r.Store.(*store.FileStore); ok {
		result.Location = fs.PathFor(run)
	}
	r.Logger.Debug("saved layouts", "store", r.StoreName, "location", result.Location)
	return nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	return stderrors.Join(errs...)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
