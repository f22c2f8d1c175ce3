package board

import "fmt"

// Move is a piece displacement. The mover's color is implied by the position
// it is played in.
type Move struct {
	From  Square
	To    Square
	Piece PieceType
}

// IsPromotion reports whether the move takes a pawn to its last rank.
func (m Move) IsPromotion() bool {
	return m.Piece == Pawn && (m.To.Rank() == 7 || m.To.Rank() == 0)
}

// String returns the move in UCI long algebraic notation, e.g. "e2e4" or
// "e7e8q". Promotions are always to a queen.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += "q"
	}
	return s
}

// Successor is a legal move together with the position it leads to.
type Successor struct {
	Move     Move
	Position Position
}

// ParseMove resolves UCI notation against the legal moves of side in pos.
// A promotion suffix other than "q" is rejected since only queen promotions
// exist.
func ParseMove(pos *Position, side Color, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}

	for _, m := range pos.LegalMoves(side) {
		if m.From != from || m.To != to {
			continue
		}
		if len(s) == 5 && (!m.IsPromotion() || s[4] != 'q') {
			break
		}
		return m, nil
	}

	return Move{}, fmt.Errorf("%w: %s for %s", ErrIllegalMove, s, side)
}
