package board

// Status classifies a position for the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Successors returns every legal move of side together with the resulting
// position. Each pseudo-legal destination is played on a copy and kept only
// if it leaves the mover's king out of check. Moves are ordered by piece type
// (pawn first), then origin square, then destination square.
func (p *Position) Successors(side Color) []Successor {
	var out []Successor

	for pt := Pawn; pt <= King; pt++ {
		pieces := p.Pieces[side][pt]
		for pieces != 0 {
			from := pieces.Pop()
			targets := p.MovementMask(from, pt, side)
			for targets != 0 {
				to := targets.Pop()

				next := *p
				next.Apply(from, pt, side, to)
				if next.InCheck(side) {
					continue
				}

				out = append(out, Successor{
					Move:     Move{From: from, To: to, Piece: pt},
					Position: next,
				})
			}
		}
	}

	return out
}

// LegalMoves returns the legal moves of side.
func (p *Position) LegalMoves(side Color) []Move {
	succ := p.Successors(side)
	moves := make([]Move, len(succ))
	for i, s := range succ {
		moves[i] = s.Move
	}
	return moves
}

// Status reports whether side is mated, stalemated or still has moves.
func (p *Position) Status(side Color) Status {
	if len(p.Successors(side)) > 0 {
		return Ongoing
	}
	if p.InCheck(side) {
		return Checkmate
	}
	return Stalemate
}

// Perft counts the leaf positions reachable in exactly depth plies.
func Perft(pos *Position, side Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	succ := pos.Successors(side)
	if depth == 1 {
		return uint64(len(succ))
	}

	var nodes uint64
	for i := range succ {
		nodes += Perft(&succ[i].Position, side.Other(), depth-1)
	}
	return nodes
}
