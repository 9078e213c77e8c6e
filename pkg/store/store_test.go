package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/io"
	"github.com/matzehuels/paragon/pkg/stitch"
)

func testRun() *Run {
	run := NewRun("paragon", []string{"gate", "base"}, []stitch.Layout{
		{"AB", "CD", "=="},
		{"EF", "GH", "=="},
	})
	run.CreatedAt = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	return run
}

func TestNewRun(t *testing.T) {
	run := NewRun("paragon", []string{"gate", "base"}, nil)
	if run.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("NewRun should assign an ID")
	}
	if got := strings.Join(run.BoardNames, ","); got != "base,gate" {
		t.Errorf("BoardNames = %s, want base,gate", got)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestFileStorePathFor(t *testing.T) {
	s := NewFileStore("out")
	got := s.PathFor(testRun())
	want := filepath.Join("out", "paragon_stitched_boards_20240309_140507.txt")
	if got != want {
		t.Errorf("PathFor() = %s, want %s", got, want)
	}
}

func TestFileStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)
	run := testRun()

	if err := s.Save(context.Background(), run); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	layouts, err := io.ImportLayouts(s.PathFor(run))
	if err != nil {
		t.Fatalf("ImportLayouts() error: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	if layouts[1].String() != "EF\nGH\n==" {
		t.Errorf("layout 1 = %q", layouts[1].String())
	}
}

func TestFileStoreSaveSameSecond(t *testing.T) {
	s := NewFileStore(t.TempDir())
	first := testRun()
	first.Layouts = []stitch.Layout{{"AA", "=="}}
	second := NewRun(first.Class, first.BoardNames, []stitch.Layout{{"BB", "=="}})
	second.CreatedAt = first.CreatedAt

	for _, run := range []*Run{first, second} {
		if err := s.Save(context.Background(), run); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	layouts, err := io.ImportLayouts(s.PathFor(second))
	if err != nil {
		t.Fatalf("ImportLayouts() error: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	if layouts[0].String() != "AA\n==" || layouts[1].String() != "BB\n==" {
		t.Errorf("layouts = %q, want the first run followed by the second", layouts)
	}
}

func TestFileStoreSaveFailure(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := testRun()
	before := len(run.Layouts)

	err := NewFileStore(blocker).Save(context.Background(), run)
	if !errors.Is(err, errors.ErrCodeStoreFailed) {
		t.Fatalf("Save() error = %v, want STORE_FAILED", err)
	}
	if len(run.Layouts) != before {
		t.Error("a failed Save must not modify the run")
	}
}

func TestFileStoreSaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewFileStore(t.TempDir()).Save(ctx, testRun()); err != context.Canceled {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}

func TestNullStore(t *testing.T) {
	s := NewNullStore()
	if err := s.Save(context.Background(), testRun()); err != nil {
		t.Errorf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestRunDocumentRoundTrip(t *testing.T) {
	run := testRun()
	got, err := toDocument(run).run()
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got.ID != run.ID || got.Class != run.Class || len(got.Layouts) != len(run.Layouts) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("PARAGON_MONGO_URI")
	if uri == "" {
		t.Skip("PARAGON_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	class := "test_" + strings.ReplaceAll(t.Name(), "/", "_")
	s, err := NewMongoStore(ctx, uri, "paragon_test", "runs")
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()
	defer s.coll.Drop(context.Background())

	older := testRun()
	older.Class = class
	newer := testRun()
	newer.Class = class
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	for _, r := range []*Run{older, newer} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	runs, err := s.List(ctx, class, 1)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != newer.ID {
		t.Errorf("List() = %v, want newest run only", runs)
	}
}
