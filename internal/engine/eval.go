package engine

import "github.com/hailam/bogfish/internal/board"

// MateScore is the value of a position in which Black is checkmated. A mated
// White side scores -MateScore.
const MateScore = 32767

func mateValue(mated board.Color) int {
	if mated == board.White {
		return -MateScore
	}
	return MateScore
}

// Evaluator scores a position from White's point of view: positive favours
// White, negative favours Black.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(pos *board.Position) int

func (f EvaluatorFunc) Evaluate(pos *board.Position) int { return f(pos) }

// Material counts piece values: pawn 1, knight 3, bishop 3, rook 5, queen 9.
// Kings are not counted.
var Material EvaluatorFunc = material

func material(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		diff := pos.Count(pt, board.White) - pos.Count(pt, board.Black)
		score += diff * board.PieceValue[pt]
	}
	return score
}

// Nested centre rings. A piece scores one point for each ring it stands in.
var centreRings = [3]board.Bitboard{
	0x007E7E7E7E7E7E00,
	0x00003C3C3C3C0000,
	0x0000001818000000,
}

// Positional is material in tenths of a pawn plus a bonus for non-king
// pieces standing near the centre.
var Positional EvaluatorFunc = positional

func positional(pos *board.Position) int {
	score := material(pos) * 10
	for pt := board.Pawn; pt < board.King; pt++ {
		white := pos.Pieces[board.White][pt]
		black := pos.Pieces[board.Black][pt]
		for _, ring := range centreRings {
			score += (white & ring).Count()
			score -= (black & ring).Count()
		}
	}
	return score
}

// EvaluatorByName resolves "material" or "positional".
func EvaluatorByName(name string) (Evaluator, bool) {
	switch name {
	case "material", "":
		return Material, true
	case "positional":
		return Positional, true
	}
	return nil, false
}
