package selfplay

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hailam/bogfish/internal/board"
	"github.com/hailam/bogfish/internal/engine"
)

func newEngine(t *testing.T, depth int) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Config{Threads: 1, Depth: depth})
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestPlayEndings(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		plies  int
		result string
	}{
		{"mate in one", "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 1, WhiteWins},
		{"already mated", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", 0, WhiteWins},
		{"white mated", "k7/8/8/8/8/8/6PP/r6K w - - 0 1", 0, BlackWins},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0, Draw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, side, err := board.ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}

			out, err := Play(context.Background(), newEngine(t, 2), pos, side, Options{MaxPlies: 10})
			if err != nil {
				t.Fatal(err)
			}
			if out.Plies != tc.plies || out.Result != tc.result {
				t.Errorf("got %d plies %s, want %d plies %s", out.Plies, out.Result, tc.plies, tc.result)
			}
		})
	}
}

func TestPlayPlyLimit(t *testing.T) {
	var buf bytes.Buffer
	start := board.StartPosition()

	out, err := Play(context.Background(), newEngine(t, 1), start, board.White, Options{MaxPlies: 4, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}

	if out.Plies != 4 || len(out.Moves) != 4 || out.Result != Unfinished {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Side != board.White {
		t.Errorf("side to move after 4 plies = %v", out.Side)
	}

	// Replaying the recorded moves must reach the final position.
	pos, side := start, board.White
	for _, m := range out.Moves {
		if _, err := board.ParseMove(&pos, side, m.String()); err != nil {
			t.Fatalf("recorded move %v is illegal: %v", m, err)
		}
		pos.Apply(m.From, m.Piece, side, m.To)
		side = side.Other()
	}
	if pos != out.Final {
		t.Error("replayed moves do not reach the final position")
	}

	if got := strings.Count(buf.String(), "Board value: "); got != 4 {
		t.Errorf("printed %d board values, want 4", got)
	}
}

type failingSearcher struct{}

func (failingSearcher) Search(board.Position, board.Color) (engine.Result, error) {
	return engine.Result{}, engine.ErrInvalidDepth
}

func TestPlaySearchError(t *testing.T) {
	_, err := Play(context.Background(), failingSearcher{}, board.StartPosition(), board.White, Options{})
	if !errors.Is(err, engine.ErrInvalidDepth) {
		t.Errorf("Play error = %v, want %v", err, engine.ErrInvalidDepth)
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Play(ctx, newEngine(t, 1), board.StartPosition(), board.White, Options{})
	if !errors.Is(err, context.Canceled) || out.Plies != 0 {
		t.Errorf("got %d plies, err %v", out.Plies, err)
	}
}

func TestBench(t *testing.T) {
	var buf bytes.Buffer
	res, err := Bench(newEngine(t, 1), board.StartPosition(), board.White, &buf)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), "Root value: 0\n") {
		t.Errorf("output starts with %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	if !strings.Contains(buf.String(), "g1 Knight to h3\n") {
		t.Errorf("missing g1h3 in output:\n%s", buf.String())
	}
	if len(res.Best) != 20 {
		t.Errorf("best set has %d moves, want 20", len(res.Best))
	}
}
