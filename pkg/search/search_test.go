package search

import (
	"context"
	"testing"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/errors"
)

func boardSet(bs ...board.Board) map[string]board.Board {
	m := make(map[string]board.Board, len(bs))
	for _, b := range bs {
		m[b.Name()] = b
	}
	return m
}

func threeBoards() map[string]board.Board {
	return boardSet(
		board.New("base", []string{"SN", "nN"}),
		board.New("gate", []string{"GM", "mR"}),
		board.New("glyph", []string{"YL", "r-"}),
	)
}

func TestEnumerateSingleBoard(t *testing.T) {
	base := board.New("base", []string{"AB", "CD"})
	res, err := Enumerate(context.Background(), boardSet(base), Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(res.Grids) != 1 {
		t.Fatalf("got %d layouts, want 1", len(res.Grids))
	}

	g := res.Grids[0]
	if g.Rows() != 1 || g.Cols() != 1 {
		t.Errorf("grid is %dx%d, want 1x1", g.Rows(), g.Cols())
	}
	if !g.At(0, 0).Equal(base) {
		t.Errorf("cell (0,0) = %v, want base", g.At(0, 0))
	}
	if res.Truncated {
		t.Error("single layout should not be truncated")
	}
}

func TestEnumerateTwoBoards(t *testing.T) {
	boards := boardSet(
		board.New("base", []string{"11", "11"}),
		board.New("Y", []string{"22", "22"}),
	)
	res, err := Enumerate(context.Background(), boards, Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(res.Grids) != 4 {
		t.Fatalf("got %d layouts, want 4", len(res.Grids))
	}
	for i, g := range res.Grids {
		if g.Rows() != 2 || g.Cols() != 1 {
			t.Fatalf("layout %d is %dx%d, want 2x1", i, g.Rows(), g.Cols())
		}
		if g.At(0, 0).Name() != "Y" || g.At(1, 0).Name() != "base" {
			t.Errorf("layout %d = %q, want Y above base", i, g.String())
		}
	}

	want := Stats{Placements: 4, Recorded: 4}
	got := res.Stats
	got.Duration = 0
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestEnumerateRotationsInOrder(t *testing.T) {
	y := board.New("Y", []string{"AB", "CD"})
	boards := boardSet(board.New("base", []string{"11", "11"}), y)
	res, err := Enumerate(context.Background(), boards, Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for k, g := range res.Grids {
		if !g.At(0, 0).Equal(y.Rotate(k)) {
			t.Errorf("layout %d holds %v, want rotation %d", k, g.At(0, 0).Rows(), k)
		}
	}
}

func TestEnumerateThreeBoards(t *testing.T) {
	res, err := Enumerate(context.Background(), threeBoards(), Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	// Per first placement (2 boards x 4 rotations): the cell below is the
	// base (pruned), three neighbours are open, each taking 4 rotations of the
	// last board, each recorded once per in-bounds neighbour (3 each).
	if len(res.Grids) != 288 {
		t.Fatalf("got %d layouts, want 288", len(res.Grids))
	}
	if res.Stats.Placements != 104 {
		t.Errorf("Placements = %d, want 104", res.Stats.Placements)
	}
	if res.Stats.Pruned != 8 {
		t.Errorf("Pruned = %d, want 8", res.Stats.Pruned)
	}

	for i, g := range res.Grids {
		if g.Placed() != 3 {
			t.Errorf("layout %d has %d boards, want 3", i, g.Placed())
		}
		seen := map[string]bool{}
		for _, name := range g.Names() {
			if seen[name] {
				t.Errorf("layout %d places %q twice", i, name)
			}
			seen[name] = true
		}
		if r, c, ok := g.Find("base"); !ok || r != 2 || c != 1 {
			t.Errorf("layout %d: base at (%d,%d,%v), want (2,1)", i, r, c, ok)
		}
		if g.At(1, 1).IsBlank() {
			t.Errorf("layout %d: cell above anchor is empty", i)
		}
	}
}

func TestEnumerateFourBoards(t *testing.T) {
	boards := boardSet(
		board.New("base", []string{"B"}),
		board.New("a", []string{"1"}),
		board.New("b", []string{"2"}),
		board.New("c", []string{"3"}),
	)
	res, err := Enumerate(context.Background(), boards, Options{EdgeLength: 1})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(res.Grids) != 11904 {
		t.Fatalf("got %d layouts, want 11904", len(res.Grids))
	}
	if res.Stats.Placements != 3756 {
		t.Errorf("Placements = %d, want 3756", res.Stats.Placements)
	}
	if res.Stats.Pruned != 300 {
		t.Errorf("Pruned = %d, want 300", res.Stats.Pruned)
	}
	for i, g := range res.Grids {
		if g.Rows() != 4 || g.Cols() != 5 {
			t.Fatalf("layout %d is %dx%d, want 4x5", i, g.Rows(), g.Cols())
		}
		if r, c, ok := g.Find("base"); !ok || r != 3 || c != 2 {
			t.Fatalf("layout %d: base at (%d,%d,%v), want (3,2)", i, r, c, ok)
		}
	}
}

func TestEnumerateParallelMatchesSequential(t *testing.T) {
	seq, err := Enumerate(context.Background(), threeBoards(), Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := Enumerate(context.Background(), threeBoards(), Options{EdgeLength: 2, Workers: 4})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(par.Grids) != len(seq.Grids) {
		t.Fatalf("parallel found %d layouts, sequential %d", len(par.Grids), len(seq.Grids))
	}
	for i := range seq.Grids {
		if !sameGrid(seq.Grids[i], par.Grids[i]) {
			t.Fatalf("layout %d differs:\n%s\nvs\n%s", i, seq.Grids[i], par.Grids[i])
		}
	}
	if par.Stats.Placements != seq.Stats.Placements {
		t.Errorf("Placements = %d, want %d", par.Stats.Placements, seq.Stats.Placements)
	}
}

func TestEnumerateLimit(t *testing.T) {
	for _, workers := range []int{1, 3} {
		res, err := Enumerate(context.Background(), threeBoards(), Options{EdgeLength: 2, Limit: 5, Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(res.Grids) != 5 {
			t.Errorf("workers=%d: got %d layouts, want 5", workers, len(res.Grids))
		}
		if !res.Truncated {
			t.Errorf("workers=%d: result should be truncated", workers)
		}
	}
}

func TestEnumerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Enumerate(ctx, threeBoards(), Options{EdgeLength: 2})
	if err != context.Canceled {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if res == nil || len(res.Grids) != 0 {
		t.Errorf("cancelled search should return an empty partial result, got %+v", res)
	}
}

func TestEnumerateConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		boards map[string]board.Board
		code   errors.Code
	}{
		{
			name:   "empty",
			boards: map[string]board.Board{},
			code:   errors.ErrCodeInvalidConfig,
		},
		{
			name:   "missing base",
			boards: boardSet(board.New("gate", []string{"AB", "CD"})),
			code:   errors.ErrCodeInvalidConfig,
		},
		{
			name: "bad shape",
			boards: boardSet(
				board.New("base", []string{"AB", "CD"}),
				board.New("gate", []string{"AB", "C"}),
			),
			code: errors.ErrCodeInvalidShape,
		},
		{
			name: "mismatched key",
			boards: map[string]board.Board{
				"base":  board.New("base", []string{"AB", "CD"}),
				"other": board.New("gate", []string{"AB", "CD"}),
			},
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Enumerate(context.Background(), tt.boards, Options{EdgeLength: 2})
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
			if res != nil {
				t.Errorf("result = %+v, want nil", res)
			}
		})
	}
}

func TestEnumerateDefaultEdge(t *testing.T) {
	base := board.Blank(board.DefaultEdge)
	base = board.New("base", base.Rows())
	res, err := Enumerate(context.Background(), boardSet(base), Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if res.Grids[0].Edge() != board.DefaultEdge {
		t.Errorf("Edge = %d, want %d", res.Grids[0].Edge(), board.DefaultEdge)
	}
}

func TestEnumerateRecordsIndependentCopies(t *testing.T) {
	res, err := Enumerate(context.Background(), threeBoards(), Options{EdgeLength: 2})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	before := res.Grids[1].String()
	res.Grids[0].Set(0, 0, board.New("intruder", []string{"XX", "XX"}))
	if res.Grids[1].String() != before {
		t.Error("mutating one recorded layout changed another")
	}
}

func TestEnumerateProgress(t *testing.T) {
	var calls []Stats
	_, err := Enumerate(context.Background(), threeBoards(), Options{
		EdgeLength: 2,
		Progress:   func(s Stats) { calls = append(calls, s) },
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(calls) == 0 {
		t.Fatal("Progress was never called")
	}
	if last := calls[len(calls)-1]; last.Recorded != 288 {
		t.Errorf("final Progress Recorded = %d, want 288", last.Recorded)
	}
}

func sameGrid(a, b *MetaGrid) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for r := range a.Rows() {
		for c := range a.Cols() {
			if !a.At(r, c).Equal(b.At(r, c)) {
				return false
			}
		}
	}
	return true
}
