package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
// Castling, en passant and under-promotion cannot occur within four plies, so
// the reference counts apply unchanged.
func TestPerftStartingPosition(t *testing.T) {
	pos := StartPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		if tc.depth == 4 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := Perft(&pos, White, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 tests rook and pawn play around exposed kings.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, side, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(&pos, side, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestMaximumBranchingFactor checks the known position with the most legal
// moves in chess.
func TestMaximumBranchingFactor(t *testing.T) {
	pos, side, err := ParseFEN("R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if got := len(pos.LegalMoves(side)); got != 218 {
		t.Errorf("legal moves = %d, want 218", got)
	}
}
