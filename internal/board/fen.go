package board

import (
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN reads the piece placement and side to move of a FEN string.
// Castling, en passant and clock fields are accepted but not modelled. The
// position must have exactly one king per side.
func ParseFEN(fen string) (Position, Color, error) {
	var pos Position

	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return pos, White, fmt.Errorf("%w: need at least 2 fields, got %d", ErrInvalidFEN, len(parts))
	}

	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, White, err
	}

	var side Color
	switch parts[1] {
	case "w", "W":
		side = White
	case "b", "B":
		side = Black
	default:
		return Position{}, White, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	if pos.Pieces[White][King].Count() != 1 || pos.Pieces[Black][King].Count() != 1 {
		return Position{}, White, ErrMissingKing
	}

	return pos, side, nil
}

// parsePiecePlacement parses the first FEN field, rank 8 first.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}

			pt, c, ok := pieceFromChar(ch)
			if !ok {
				return fmt.Errorf("%w: piece character %q", ErrInvalidFEN, ch)
			}
			pos.Put(NewSquare(file, rank), pt, c)
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return nil
}

// FEN returns the FEN of the position with side to move. Castling and en
// passant are written as "-".
func (p *Position) FEN(side Color) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pt, c, ok := p.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pt.Char(c))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if side == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
