package engine

import (
	"errors"
	"testing"

	"github.com/hailam/bogfish/internal/board"
)

func mustFEN(t *testing.T, fen string) (board.Position, board.Color) {
	t.Helper()
	pos, side, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos, side
}

func TestDepthZeroEvaluatesRoot(t *testing.T) {
	for _, fen := range evalFENs {
		pos, side := mustFEN(t, fen)
		for _, threads := range []int{1, 4} {
			root, err := BuildTree(pos, side, 0, threads)
			if err != nil {
				t.Fatal(err)
			}
			if root.Len() != 0 {
				t.Errorf("%s: depth 0 root has %d children", fen, root.Len())
			}
			if want := Material.Evaluate(&pos); root.Value != want {
				t.Errorf("%s: root value %d, want %d", fen, root.Value, want)
			}
			if !root.Evaluated {
				t.Errorf("%s: root not marked evaluated", fen)
			}
		}
	}
}

func TestStartPositionDepthOne(t *testing.T) {
	root, err := BuildTree(board.StartPosition(), board.White, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if root.Len() != 20 {
		t.Fatalf("root has %d children, want 20", root.Len())
	}
	if root.NumChildren != 20 {
		t.Errorf("record child count %d, want 20", root.NumChildren)
	}
	if root.Value != 0 {
		t.Errorf("root value %d, want 0", root.Value)
	}
	if got := len(root.BestChildren()); got != 20 {
		t.Errorf("best set has %d moves, want 20", got)
	}
}

func TestMateScore(t *testing.T) {
	pos, side := mustFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	mirrored := pos.Mirror()

	tests := []struct {
		name     string
		pos      board.Position
		side     board.Color
		expected int
	}{
		{"black mated", pos, side, MateScore},
		{"white mated", mirrored, side.Other(), -MateScore},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, cfg := range []struct{ depth, threads int }{{1, 1}, {3, 1}, {3, 4}} {
				root, err := BuildTree(tc.pos, tc.side, cfg.depth, cfg.threads)
				if err != nil {
					t.Fatal(err)
				}
				if root.Value != tc.expected {
					t.Errorf("depth %d threads %d: value %d, want %d", cfg.depth, cfg.threads, root.Value, tc.expected)
				}
				if root.Len() != 0 || len(root.BestChildren()) != 0 {
					t.Errorf("mated root should have no children")
				}
			}
		})
	}
}

func TestStalemateFallsBackToMaterial(t *testing.T) {
	pos, side := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	for _, threads := range []int{1, 4} {
		root, err := BuildTree(pos, side, 3, threads)
		if err != nil {
			t.Fatal(err)
		}
		if root.Value != 9 {
			t.Errorf("threads %d: value %d, want 9", threads, root.Value)
		}
		if root.Len() != 0 {
			t.Errorf("threads %d: stalemated root has children", threads)
		}
	}
}

func TestFindsMateInOne(t *testing.T) {
	pos, side := mustFEN(t, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1")

	for _, cfg := range []struct{ depth, threads int }{{2, 1}, {3, 1}, {3, 4}} {
		root, err := BuildTree(pos, side, cfg.depth, cfg.threads)
		if err != nil {
			t.Fatal(err)
		}
		if root.Value != MateScore {
			t.Errorf("depth %d threads %d: value %d, want %d", cfg.depth, cfg.threads, root.Value, MateScore)
		}
		best := root.BestChildren()
		if len(best) != 1 || best[0].Move().String() != "d1d8" {
			t.Errorf("depth %d threads %d: best set %v, want [d1d8]", cfg.depth, cfg.threads, moves(best))
		}
	}
}

// TestParallelMatchesSequential compares root and child values for thread
// counts below, at and far above the size of the frontier.
func TestParallelMatchesSequential(t *testing.T) {
	tests := []struct {
		fen     string
		depth   int
		threads []int
	}{
		{board.StartFEN, 3, []int{2, 4, 20, 64, 1000, 10000}},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, []int{3, 16, 200}},
		{"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 4, []int{2, 8}},
		{"r3k2r/8/8/3q4/8/2N2B2/PPP2PPP/R3K2R b - - 0 1", 3, []int{5, 50}},
	}

	for _, tc := range tests {
		pos, side := mustFEN(t, tc.fen)
		want, err := BuildTree(pos, side, tc.depth, 1)
		if err != nil {
			t.Fatal(err)
		}

		for _, threads := range tc.threads {
			got, err := BuildTree(pos, side, tc.depth, threads)
			if err != nil {
				t.Fatal(err)
			}
			if got.Value != want.Value {
				t.Errorf("%s threads %d: value %d, want %d", tc.fen, threads, got.Value, want.Value)
			}
			if got.Len() != want.Len() {
				t.Fatalf("%s threads %d: %d children, want %d", tc.fen, threads, got.Len(), want.Len())
			}
			for i, c := range got.Children() {
				w := want.Children()[i]
				if c.Move() != w.Move() || c.Value != w.Value {
					t.Errorf("%s threads %d: child %v = %d, want %v = %d",
						tc.fen, threads, c.Move(), c.Value, w.Move(), w.Value)
				}
			}
		}
	}
}

func TestRootKeepsOnlyDirectChildren(t *testing.T) {
	pos := board.StartPosition()

	for _, threads := range []int{1, 8} {
		root, err := BuildTree(pos, board.White, 3, threads)
		if err != nil {
			t.Fatal(err)
		}
		if got := root.Size(); got != 21 {
			t.Errorf("threads %d: tree size %d after build, want 21", threads, got)
		}
		for _, c := range root.Children() {
			if c.NumChildren != 20 {
				t.Errorf("threads %d: %v recorded %d children, want 20", threads, c.Move(), c.NumChildren)
			}
		}
	}
}

func TestBuildStats(t *testing.T) {
	tests := []struct {
		threads int
	}{
		{1},
		{4},
	}

	for _, tc := range tests {
		b, err := NewBuilder(Config{Threads: tc.threads, Depth: 3})
		if err != nil {
			t.Fatal(err)
		}
		_, stats, err := b.Build(board.StartPosition(), board.White)
		if err != nil {
			t.Fatal(err)
		}

		// 1 + 20 + 400 + 8902 nodes, every depth-3 node is a leaf.
		if stats.Nodes != 9323 {
			t.Errorf("threads %d: %d nodes, want 9323", tc.threads, stats.Nodes)
		}
		if stats.Leaves != 8902 {
			t.Errorf("threads %d: %d leaves, want 8902", tc.threads, stats.Leaves)
		}
		if tc.threads > 1 && stats.Frontier < tc.threads {
			t.Errorf("threads %d: frontier %d", tc.threads, stats.Frontier)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"default", DefaultConfig(), nil},
		{"no threads", Config{Threads: 0, Depth: 3}, ErrInvalidThreads},
		{"negative depth", Config{Threads: 1, Depth: -1}, ErrInvalidDepth},
		{"too deep", Config{Threads: 1, Depth: MaxDepth + 1}, ErrInvalidDepth},
		{"deepest", Config{Threads: 1, Depth: MaxDepth}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
			if _, err := NewBuilder(tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("NewBuilder() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWorkerPanicBecomesError(t *testing.T) {
	boom := EvaluatorFunc(func(pos *board.Position) int {
		panic(ErrBranchingFactor)
	})
	b, err := NewBuilder(Config{Threads: 4, Depth: 3, Evaluator: boom})
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = b.Build(board.StartPosition(), board.White)
	if !errors.Is(err, ErrBranchingFactor) {
		t.Errorf("Build error = %v, want %v", err, ErrBranchingFactor)
	}
}

func moves(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Move().String()
	}
	return out
}
