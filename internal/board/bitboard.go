package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square with a1 as bit 0 and h8
// as bit 63.
type Bitboard uint64

const (
	Empty Bitboard = 0
	Full  Bitboard = ^Empty

	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56
)

// Board halves. A rotated step pattern is ANDed with one of these when its
// anchor square sits on the matching border strip, which removes the bits
// that wrapped around to the opposite edge.
const (
	WestHalf  Bitboard = 0x0F0F0F0F0F0F0F0F
	EastHalf  Bitboard = ^WestHalf
	NorthHalf Bitboard = 0xFFFFFFFF00000000
	SouthHalf Bitboard = ^NorthHalf
)

// Border strips, two files or two ranks wide.
const (
	WestBorder  Bitboard = FileA | FileB
	EastBorder  Bitboard = FileG | FileH
	NorthBorder Bitboard = Rank7 | Rank8
	SouthBorder Bitboard = Rank1 | Rank2
)

// Direction is one of the eight single-square steps on the board.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Each step is a signed bit offset plus the files a shifted bit may not land
// on. Moving east can never land on file a, moving west never on file h.
var steps = [8]struct {
	offset int
	guard  Bitboard
}{
	North:     {8, Empty},
	NorthEast: {9, FileA},
	East:      {1, FileA},
	SouthEast: {-7, FileA},
	South:     {-8, Empty},
	SouthWest: {-9, FileH},
	West:      {-1, FileH},
	NorthWest: {7, FileH},
}

// Shift moves every square one step in direction d. Squares pushed off the
// board disappear.
func (b Bitboard) Shift(d Direction) Bitboard {
	s := steps[d]
	if s.offset > 0 {
		return (b << s.offset) &^ s.guard
	}
	return (b >> -s.offset) &^ s.guard
}

// SquareBB returns the set holding only sq.
func SquareBB(sq Square) Bitboard {
	return Bitboard(1) << sq
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Count returns the number of squares in the set.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// First returns the lowest square in the set, NoSquare when it is empty.
func (b Bitboard) First() Square {
	if b == Empty {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Pop removes the lowest square and returns it.
func (b *Bitboard) Pop() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// RotateLeft rotates the mask left by k bits; bits leaving h8 re-enter at a1.
func (b Bitboard) RotateLeft(k int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), k))
}

// Squares lists the set from a1 upwards.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for rest := b; rest != Empty; {
		out = append(out, rest.Pop())
	}
	return out
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		for f := 0; f < 8; f++ {
			mark := " ."
			if b.Has(NewSquare(f, r)) {
				mark = " #"
			}
			sb.WriteString(mark)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
