package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/cache"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/observability"
	"github.com/matzehuels/paragon/pkg/store"
)

// writeClass creates dir/class with one file per board.
func writeClass(t *testing.T, dir, class string, boards map[string]string) {
	t.Helper()
	classDir := filepath.Join(dir, class)
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range boards {
		if err := os.WriteFile(filepath.Join(classDir, name+".txt"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// twoBoardClass is the smallest class that needs a search: the gate board
// can only go above the base.
func twoBoardClass(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeClass(t, dir, "paragon", map[string]string{
		"base": "11\n11\n",
		"gate": "22\n22\n",
	})
	return dir
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Class: "paragon"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.ClassDir != DefaultClassDir {
		t.Errorf("ClassDir should be %s, got %s", DefaultClassDir, opts.ClassDir)
	}
	if opts.EdgeLength != board.DefaultEdge {
		t.Errorf("EdgeLength should be %d, got %d", board.DefaultEdge, opts.EdgeLength)
	}
	if opts.Workers != 1 {
		t.Errorf("Workers should be 1, got %d", opts.Workers)
	}
	if opts.Separator != " | " || opts.Divider != '=' {
		t.Errorf("stitch defaults = %q %q", opts.Separator, opts.Divider)
	}
	if opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL should be %s, got %s", DefaultCacheTTL, opts.CacheTTL)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing class", Options{}, errors.ErrCodeInvalidInput},
		{"bad class", Options{Class: "../etc"}, errors.ErrCodeInvalidInput},
		{"negative limit", Options{Class: "a", Limit: -1}, errors.ErrCodeInvalidInput},
		{"negative timeout", Options{Class: "a", Timeout: -time.Second}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Class: "paragon"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	original := opts.LayoutKeyOpts()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.LayoutKeyOpts() != original {
		t.Error("LayoutKeyOpts changed on second call")
	}
}

func TestLayoutKeyOptsIgnoresWorkers(t *testing.T) {
	a := Options{Class: "paragon", Workers: 1}
	b := Options{Class: "paragon", Workers: 8, Timeout: time.Minute}
	_ = a.ValidateAndSetDefaults()
	_ = b.ValidateAndSetDefaults()
	if a.LayoutKeyOpts() != b.LayoutKeyOpts() {
		t.Error("Workers and Timeout should not change the cache key")
	}
}

func TestExecute(t *testing.T) {
	dir := twoBoardClass(t)
	r := NewRunner(nil, nil, nil)

	result, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: "paragon", EdgeLength: 2})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(result.Layouts) != 4 {
		t.Fatalf("got %d layouts, want 4", len(result.Layouts))
	}
	want := "22\n22\n==\n11\n11\n=="
	for i, l := range result.Layouts {
		if l.String() != want {
			t.Errorf("layout %d = %q, want %q", i, l.String(), want)
		}
	}
	if got := strings.Join(result.BoardNames, ","); got != "base,gate" {
		t.Errorf("BoardNames = %s", got)
	}
	if result.CacheHit || result.Truncated || result.TimedOut {
		t.Errorf("unexpected flags: %+v", result)
	}
	if result.RunID != "" {
		t.Error("RunID should be empty without a store")
	}
	if result.Stats.Recorded != 4 {
		t.Errorf("Stats.Recorded = %d, want 4", result.Stats.Recorded)
	}
}

func TestExecuteLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "nobase", map[string]string{"gate": "22\n22\n"})
	writeClass(t, dir, "skewed", map[string]string{"base": "11\n11\n", "gate": "222\n22\n"})

	tests := []struct {
		class string
		code  errors.Code
	}{
		{"missing", errors.ErrCodeFileNotFound},
		{"nobase", errors.ErrCodeInvalidConfig},
		{"skewed", errors.ErrCodeInvalidShape},
	}

	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			result, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: tt.class, EdgeLength: 2})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
			if result != nil {
				t.Error("load failures should not return a result")
			}
		})
	}
}

func TestExecuteCache(t *testing.T) {
	dir := twoBoardClass(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{ClassDir: dir, Class: "paragon", EdgeLength: 2}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if len(second.Layouts) != len(first.Layouts) || second.Stats.Recorded != first.Stats.Recorded {
		t.Error("cached result differs from computed result")
	}

	refreshed := opts
	refreshed.Refresh = true
	third, err := r.Execute(context.Background(), refreshed)
	if err != nil {
		t.Fatalf("refreshed Execute() error: %v", err)
	}
	if third.CacheHit {
		t.Error("Refresh should skip the cache")
	}

	// Editing a board changes the key.
	writeClass(t, dir, "paragon", map[string]string{"gate": "33\n33\n"})
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() after edit error: %v", err)
	}
	if fourth.CacheHit {
		t.Error("edited boards should miss the cache")
	}
}

func TestExecuteLimit(t *testing.T) {
	dir := twoBoardClass(t)
	r := NewRunner(nil, nil, nil)

	result, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: "paragon", EdgeLength: 2, Limit: 3})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(result.Layouts) != 3 || !result.Truncated {
		t.Errorf("got %d layouts truncated=%v, want 3 truncated", len(result.Layouts), result.Truncated)
	}
}

func TestExecuteCancelled(t *testing.T) {
	dir := twoBoardClass(t)
	r := NewRunner(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Execute(ctx, Options{ClassDir: dir, Class: "paragon", EdgeLength: 2})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteFileStore(t *testing.T) {
	dir := twoBoardClass(t)
	out := t.TempDir()
	r := NewRunner(nil, nil, nil)
	r.Store = store.NewFileStore(out)
	r.StoreName = "file"

	result, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: "paragon", EdgeLength: 2})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.RunID == "" {
		t.Error("RunID should be set after a successful save")
	}

	matches, _ := filepath.Glob(filepath.Join(out, "paragon_stitched_boards_*.txt"))
	if len(matches) != 1 {
		t.Errorf("expected one output file, got %v", matches)
	}
}

type failingStore struct{}

func (failingStore) Save(context.Context, *store.Run) error { return stderrors.New("disk full") }
func (failingStore) Close() error                           { return nil }

func TestExecuteStoreFailureKeepsResult(t *testing.T) {
	dir := twoBoardClass(t)
	r := NewRunner(nil, nil, nil)
	r.Store = failingStore{}

	result, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: "paragon", EdgeLength: 2})
	if !errors.Is(err, errors.ErrCodeStoreFailed) {
		t.Fatalf("Execute() error = %v, want STORE_FAILED", err)
	}
	if result == nil || len(result.Layouts) != 4 {
		t.Fatal("a store failure must not discard the layouts")
	}
	if result.RunID != "" {
		t.Error("RunID should stay empty when the save fails")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnSearchStart(context.Context, string, int) {
	h.record("search")
}
func (h *recordingHooks) OnStoreComplete(context.Context, string, int, time.Duration, error) {
	h.record("store")
}

func TestExecuteEmitsHooks(t *testing.T) {
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)

	dir := twoBoardClass(t)
	r := NewRunner(nil, nil, nil)
	r.Store = store.NewNullStore()

	if _, err := r.Execute(context.Background(), Options{ClassDir: dir, Class: "paragon", EdgeLength: 2}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := strings.Join(hooks.events, ","); got != "load,search,store" {
		t.Errorf("hook events = %s, want load,search,store", got)
	}
}
