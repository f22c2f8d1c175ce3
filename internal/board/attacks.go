package board

// Step patterns anchored at a1. Squares behind a1 wrap to the top of the
// mask: the knight's -6 offset is bit 58, the king's -1 offset is bit 63.
const (
	knightPattern Bitboard = 0x0442800000028440
	kingPattern   Bitboard = 0x8380000000000382
)

// Precomputed step tables
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		knightAttacks[sq] = stepTable(knightPattern, sq)
		kingAttacks[sq] = stepTable(kingPattern, sq)
	}
}

// stepTable rotates an a1-anchored pattern to sq and masks off the bits that
// crossed a board edge. A step piece moves at most two files or ranks, so a
// square on a two-wide border strip can only wrap onto the far half.
func stepTable(pattern Bitboard, sq Square) Bitboard {
	bb := SquareBB(sq)
	moves := pattern.RotateLeft(int(sq))

	if bb&WestBorder != 0 {
		moves &= WestHalf
	}
	if bb&EastBorder != 0 {
		moves &= EastHalf
	}
	if bb&NorthBorder != 0 {
		moves &= NorthHalf
	}
	if bb&SouthBorder != 0 {
		moves &= SouthHalf
	}

	return moves
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// slide walks every direction from sq one square at a time. Empty squares are
// reachable and the walk continues; the first occupied square ends the ray and
// is reachable only if it does not hold a piece of the mover's own side.
func slide(sq Square, occupied, own Bitboard, dirs [4]Direction) Bitboard {
	origin := SquareBB(sq)
	var moves Bitboard
	for _, d := range dirs {
		for b := origin.Shift(d); b != 0; b = b.Shift(d) {
			if b&occupied == 0 {
				moves |= b
				continue
			}
			moves |= b &^ own
			break
		}
	}
	return moves
}

// RookMoves returns the rook destinations from sq.
func RookMoves(sq Square, occupied, own Bitboard) Bitboard {
	return slide(sq, occupied, own, orthogonal)
}

// BishopMoves returns the bishop destinations from sq.
func BishopMoves(sq Square, occupied, own Bitboard) Bitboard {
	return slide(sq, occupied, own, diagonal)
}

// QueenMoves returns the queen destinations from sq.
func QueenMoves(sq Square, occupied, own Bitboard) Bitboard {
	return RookMoves(sq, occupied, own) | BishopMoves(sq, occupied, own)
}

// PawnMoves returns the pawn destinations from sq: one step forward onto an
// empty square, two steps from the starting rank when both squares are empty,
// and diagonal captures onto enemy pieces.
func PawnMoves(sq Square, c Color, occupied, enemies Bitboard) Bitboard {
	bb := SquareBB(sq)
	empty := ^occupied

	forward, startRank := North, Rank2
	if c == Black {
		forward, startRank = South, Rank7
	}

	push := bb.Shift(forward) & empty
	if bb&startRank != 0 {
		push |= push.Shift(forward) & empty
	}

	return push | pawnAttacks(bb, c)&enemies
}

// MovementMask returns the pseudo-legal destinations of a piece of type pt
// and color c standing on sq in this position.
func (p *Position) MovementMask(sq Square, pt PieceType, c Color) Bitboard {
	own := p.OccupiedBy(c)
	occupied := own | p.OccupiedBy(c.Other())

	switch pt {
	case Pawn:
		return PawnMoves(sq, c, occupied, occupied&^own)
	case Knight:
		return knightAttacks[sq] &^ own
	case Bishop:
		return BishopMoves(sq, occupied, own)
	case Rook:
		return RookMoves(sq, occupied, own)
	case Queen:
		return QueenMoves(sq, occupied, own)
	case King:
		return kingAttacks[sq] &^ own
	}
	return Empty
}
