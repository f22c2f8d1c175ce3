package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
		"r3k2r/8/8/3q4/8/2N2B2/PPP2PPP/R3K2R b - - 0 1",
	}

	for _, fen := range tests {
		pos, side, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := pos.FEN(side); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENStartPosition(t *testing.T) {
	pos, side, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if side != White {
		t.Errorf("side = %v, want white", side)
	}
	if pos != StartPosition() {
		t.Errorf("parsed start position differs:\n%v", pos.String())
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"empty", "", ErrInvalidFEN},
		{"no side", "4k3/8/8/8/8/8/8/4K3", ErrInvalidFEN},
		{"seven ranks", "4k3/8/8/8/8/8/4K3 w", ErrInvalidFEN},
		{"short rank", "4k3/8/8/8/8/8/8/4K2 w", ErrInvalidFEN},
		{"long rank", "4k3/8/8/8/8/8/8/4K4 w", ErrInvalidFEN},
		{"bad piece", "4k3/8/8/8/8/8/8/4X3 w", ErrInvalidFEN},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x", ErrInvalidFEN},
		{"no white king", "4k3/8/8/8/8/8/8/8 w", ErrMissingKing},
		{"two black kings", "3kk3/8/8/8/8/8/8/4K3 b", ErrMissingKing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseFEN(tc.fen)
			if !errors.Is(err, tc.want) {
				t.Errorf("ParseFEN(%q) error = %v, want %v", tc.fen, err, tc.want)
			}
		})
	}
}
