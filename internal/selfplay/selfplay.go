// Package selfplay lets the engine play both sides of a game.
package selfplay

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/hailam/bogfish/internal/board"
	"github.com/hailam/bogfish/internal/engine"
)

// Game results in PGN notation.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	Draw       = "1/2-1/2"
	Unfinished = "*"
)

// Searcher is the part of the engine a game needs.
type Searcher interface {
	Search(pos board.Position, side board.Color) (engine.Result, error)
}

// Options controls a game.
type Options struct {
	MaxPlies int       // 0 plays until the game ends
	Out      io.Writer // board and move after every ply; nil for silence
	Logger   zerolog.Logger
}

// Outcome describes a finished game.
type Outcome struct {
	Plies  int
	Result string
	Moves  []board.Move
	Final  board.Position
	Side   board.Color // side to move in Final
}

// Play searches, picks a random best move and plays it until the side to
// move has no best move or the ply limit is reached.
func Play(ctx context.Context, s Searcher, pos board.Position, side board.Color, opts Options) (Outcome, error) {
	out := Outcome{Result: Unfinished, Final: pos, Side: side}
	if opts.Out != nil {
		fmt.Fprint(opts.Out, pos.String())
	}

	for opts.MaxPlies == 0 || out.Plies < opts.MaxPlies {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		res, err := s.Search(out.Final, out.Side)
		if err != nil {
			return out, fmt.Errorf("ply %d: %w", out.Plies+1, err)
		}

		n, ok := res.Choose()
		if !ok {
			out.Result = result(&out.Final, out.Side)
			break
		}

		m := n.Move()
		out.Final.Apply(m.From, m.Piece, out.Side, m.To)
		out.Moves = append(out.Moves, m)
		out.Plies++

		opts.Logger.Debug().
			Int("ply", out.Plies).
			Str("move", m.String()).
			Int("value", res.Value).
			Msg("selfplay-move")

		if opts.Out != nil {
			fmt.Fprint(opts.Out, out.Final.String())
			fmt.Fprintf(opts.Out, "%s %s to %s\n", m.From, m.Piece, m.To)
			value := engine.Material.Evaluate(&out.Final)
			fmt.Fprintf(opts.Out, "Board value: %d %s\n", value, leader(value))
		}

		out.Side = out.Side.Other()
	}

	opts.Logger.Info().Int("plies", out.Plies).Str("result", out.Result).Msg("selfplay-done")
	return out, nil
}

// result scores a position where the search found nothing to play.
func result(pos *board.Position, side board.Color) string {
	switch pos.Status(side) {
	case board.Checkmate:
		if side == board.White {
			return BlackWins
		}
		return WhiteWins
	case board.Stalemate:
		return Draw
	}
	return Unfinished
}

func leader(value int) string {
	switch {
	case value > 0:
		return "WHITE"
	case value < 0:
		return "BLACK"
	}
	return "EVEN"
}

// Bench runs one search and prints the root value with every best move.
func Bench(s Searcher, pos board.Position, side board.Color, w io.Writer) (engine.Result, error) {
	res, err := s.Search(pos, side)
	if err != nil {
		return res, err
	}

	fmt.Fprintf(w, "Root value: %d\n", res.Value)
	for _, n := range res.Best {
		m := n.Move()
		fmt.Fprintf(w, "%s %s to %s\n", m.From, m.Piece, m.To)
	}
	fmt.Fprintf(w, "Nodes: %d\nTime: %v\n", res.Stats.Nodes, res.Stats.Elapsed)
	return res, nil
}
