package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Position is the placement of all pieces as twelve disjoint masks, one per
// (color, piece type). It is a value type: moves are applied to copies, so a
// position handed to another search branch is never mutated behind its back.
type Position struct {
	Pieces [2][6]Bitboard
}

// StartPosition returns the standard initial placement.
func StartPosition() Position {
	var p Position
	p.Pieces[White][Pawn] = Rank2
	p.Pieces[White][Knight] = SquareBB(B1) | SquareBB(G1)
	p.Pieces[White][Bishop] = SquareBB(C1) | SquareBB(F1)
	p.Pieces[White][Rook] = SquareBB(A1) | SquareBB(H1)
	p.Pieces[White][Queen] = SquareBB(D1)
	p.Pieces[White][King] = SquareBB(E1)
	for pt := Pawn; pt <= King; pt++ {
		p.Pieces[Black][pt] = Bitboard(bits.ReverseBytes64(uint64(p.Pieces[White][pt])))
	}
	return p
}

// Occupied returns the union of all twelve masks.
func (p *Position) Occupied() Bitboard {
	return p.OccupiedBy(White) | p.OccupiedBy(Black)
}

// OccupiedBy returns the union of the six masks of one side.
func (p *Position) OccupiedBy(c Color) Bitboard {
	var occ Bitboard
	for _, bb := range p.Pieces[c] {
		occ |= bb
	}
	return occ
}

// PieceAt returns the piece on a square; the bool is false when it is empty.
func (p *Position) PieceAt(sq Square) (PieceType, Color, bool) {
	bb := SquareBB(sq)
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if p.Pieces[c][pt]&bb != 0 {
				return pt, c, true
			}
		}
	}
	return NoPieceType, White, false
}

// Put places a piece, replacing whatever stood on the square.
func (p *Position) Put(sq Square, pt PieceType, c Color) {
	p.Remove(sq)
	p.Pieces[c][pt] |= SquareBB(sq)
}

// Remove clears the square in all twelve masks.
func (p *Position) Remove(sq Square) {
	keep := ^SquareBB(sq)
	for c := range p.Pieces {
		for pt := range p.Pieces[c] {
			p.Pieces[c][pt] &= keep
		}
	}
}

// Apply moves a piece of type pt and color c from one square to another.
// Whatever stands on the destination is captured; the caller guarantees it is
// not a piece of the mover's own color. A pawn reaching its last rank becomes
// a queen.
func (p *Position) Apply(from Square, pt PieceType, c Color, to Square) {
	p.Pieces[c][pt] &^= SquareBB(from)
	p.Remove(to)

	if pt == Pawn && isPromotionRank(to, c) {
		pt = Queen
	}
	p.Pieces[c][pt] |= SquareBB(to)
}

func isPromotionRank(sq Square, c Color) bool {
	if c == White {
		return sq.Rank() == 7
	}
	return sq.Rank() == 0
}

// KingSquare returns the square of the side's king, NoSquare if there is none.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].First()
}

// Directions scanned from the king, orthogonal first.
var (
	orthogonal = [4]Direction{North, East, South, West}
	diagonal   = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
)

// InCheck reports whether the king of color c is attacked. The position must
// hold a king of that color.
func (p *Position) InCheck(c Color) bool {
	them := c.Other()
	king := p.Pieces[c][King]
	ksq := king.First()
	occ := p.Occupied()

	straight := p.Pieces[them][Rook] | p.Pieces[them][Queen]
	if rayHits(king, occ, straight, orthogonal) {
		return true
	}

	slanted := p.Pieces[them][Bishop] | p.Pieces[them][Queen]
	if rayHits(king, occ, slanted, diagonal) {
		return true
	}

	if knightAttacks[ksq]&p.Pieces[them][Knight] != 0 {
		return true
	}
	if kingAttacks[ksq]&p.Pieces[them][King] != 0 {
		return true
	}

	return pawnAttacks(king, c)&p.Pieces[them][Pawn] != 0
}

// rayHits walks each direction one square at a time. The first occupied
// square ends the ray; it is a hit only if it holds one of the attackers.
func rayHits(origin, occ, attackers Bitboard, dirs [4]Direction) bool {
	for _, d := range dirs {
		for sq := origin.Shift(d); sq != 0; sq = sq.Shift(d) {
			if sq&occ == 0 {
				continue
			}
			if sq&attackers != 0 {
				return true
			}
			break
		}
	}
	return false
}

// pawnAttacks returns the two forward diagonal squares of a pawn of color c
// standing on bb. The edge-masked shifts drop captures that would wrap.
func pawnAttacks(bb Bitboard, c Color) Bitboard {
	if c == White {
		return bb.Shift(NorthWest) | bb.Shift(NorthEast)
	}
	return bb.Shift(SouthWest) | bb.Shift(SouthEast)
}

// Disjoint reports whether no square is claimed by two masks.
func (p *Position) Disjoint() bool {
	var seen Bitboard
	for c := range p.Pieces {
		for _, bb := range p.Pieces[c] {
			if seen&bb != 0 {
				return false
			}
			seen |= bb
		}
	}
	return true
}

// Mirror returns the position flipped vertically with colors swapped.
func (p *Position) Mirror() Position {
	var m Position
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			m.Pieces[c.Other()][pt] = Bitboard(bits.ReverseBytes64(uint64(p.Pieces[c][pt])))
		}
	}
	return m
}

// Count returns the number of pieces of one type and color.
func (p *Position) Count(pt PieceType, c Color) int {
	return p.Pieces[c][pt].Count()
}

// String returns a board diagram, rank 8 first, white pieces in upper case.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d   ", rank+1)
		for file := 0; file < 8; file++ {
			pt, c, ok := p.PieceAt(NewSquare(file, rank))
			if ok {
				sb.WriteByte(pt.Char(c))
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n    a b c d e f g h\n")
	return sb.String()
}
