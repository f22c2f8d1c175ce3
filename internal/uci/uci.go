package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/bogfish/internal/board"
	"github.com/hailam/bogfish/internal/engine"
	"github.com/hailam/bogfish/internal/storage"
)

// UCI implements the Universal Chess Interface protocol on top of a
// fixed-depth engine. Searches run synchronously: "go" returns only after
// bestmove has been written.
type UCI struct {
	engine  *engine.Engine
	journal *storage.Journal
	log     zerolog.Logger

	in  io.Reader
	out io.Writer

	position board.Position
	side     board.Color
}

// Option configures a UCI handler.
type Option func(*UCI)

// WithJournal records every command line and every search in j.
func WithJournal(j *storage.Journal) Option {
	return func(u *UCI) { u.journal = j }
}

// WithLogger sets the diagnostics logger. Protocol output never goes there.
func WithLogger(l zerolog.Logger) Option {
	return func(u *UCI) { u.log = l }
}

// New creates a UCI handler reading commands from in and answering on out.
func New(eng *engine.Engine, in io.Reader, out io.Writer, opts ...Option) *UCI {
	u := &UCI{
		engine:   eng,
		log:      zerolog.Nop(),
		in:       in,
		out:      out,
		position: board.StartPosition(),
		side:     board.White,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run processes commands until "quit" or the end of input.
func (u *UCI) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		u.record(ctx, storage.Entry{Kind: storage.KindCommand, Input: line})
		u.log.Debug().Str("cmd", line).Msg("command")

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.position, u.side = board.StartPosition(), board.White
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(ctx, args)
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			return nil
		// Debug commands
		case "d":
			fmt.Fprint(u.out, u.position.String())
			fmt.Fprintf(u.out, "Fen: %s\n", u.position.FEN(u.side))
		case "perft":
			u.handlePerft(args)
		default:
			u.log.Warn().Str("cmd", cmd).Msg("unknown-command")
		}
	}

	return scanner.Err()
}

func (u *UCI) handleUCI() {
	cfg := u.engine.Config()
	fmt.Fprintln(u.out, "id name Bogfish")
	fmt.Fprintln(u.out, "id author Bogfish developers")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name Threads type spin default %d min 1 max 1024\n", cfg.Threads)
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 0 max %d\n", cfg.Depth, engine.MaxDepth)
	fmt.Fprintln(u.out, "option name Eval type combo default material var material var positional")
	fmt.Fprintln(u.out, "uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var (
		pos  board.Position
		side board.Color
	)
	switch args[0] {
	case "startpos":
		pos, side = board.StartPosition(), board.White
	case "fen":
		var err error
		pos, side, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.log.Warn().Err(err).Msg("invalid-fen")
			fmt.Fprintf(u.out, "info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := board.ParseMove(&pos, side, s)
			if err != nil {
				u.log.Warn().Err(err).Str("move", s).Msg("invalid-move")
				fmt.Fprintf(u.out, "info string Invalid move: %s\n", s)
				return
			}
			pos.Apply(m.From, m.Piece, side, m.To)
			side = side.Other()
		}
	}

	u.position, u.side = pos, side
}

// handleGo runs one search and answers with a random move from the best set.
func (u *UCI) handleGo(ctx context.Context, args []string) {
	cfg := u.engine.Config()
	depth := cfg.Depth
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "depth" {
			if d, err := strconv.Atoi(args[i+1]); err == nil {
				depth = d
			}
			i++
		}
	}

	u.engine.OnInfo = u.sendInfo
	res, err := u.engine.SearchDepth(u.position, u.side, depth)
	if err != nil {
		u.log.Error().Err(err).Int("depth", depth).Msg("search-failed")
		fmt.Fprintf(u.out, "info string Search failed: %v\n", err)
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}

	bestmove := "0000"
	if n, ok := res.Choose(); ok {
		bestmove = n.Move().String()
	}
	fmt.Fprintf(u.out, "bestmove %s\n", bestmove)

	best := make([]string, len(res.Best))
	for i, m := range res.Moves() {
		best[i] = m.String()
	}
	u.record(ctx, storage.Entry{
		Kind:    storage.KindSearch,
		Input:   "bestmove " + bestmove,
		FEN:     u.position.FEN(u.side),
		Side:    u.side.String(),
		Depth:   depth,
		Threads: cfg.Threads,
		Value:   res.Value,
		Move:    bestmove,
		Best:    best,
		Nodes:   res.Stats.Nodes,
		Elapsed: res.Stats.Elapsed,
	})
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score cp %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	key := strings.ToLower(strings.Join(name, " "))
	val := strings.Join(value, " ")

	var err error
	switch key {
	case "threads":
		var n int
		if n, err = strconv.Atoi(val); err == nil {
			err = u.engine.SetThreads(n)
		}
	case "depth":
		var d int
		if d, err = strconv.Atoi(val); err == nil {
			err = u.engine.SetDepth(d)
		}
	case "eval":
		ev, ok := engine.EvaluatorByName(strings.ToLower(val))
		if !ok {
			err = fmt.Errorf("unknown evaluator %q", val)
		} else {
			u.engine.SetEvaluator(ev)
		}
	default:
		u.log.Warn().Str("option", key).Msg("unknown-option")
		return
	}

	if err != nil {
		u.log.Warn().Err(err).Str("option", key).Msg("invalid-option")
		fmt.Fprintf(u.out, "info string Invalid value for %s: %v\n", key, err)
	}
}

// handlePerft counts leaf nodes from the current position.
func (u *UCI) handlePerft(args []string) {
	depth := 4
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	nodes := board.Perft(&u.position, u.side, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
}

// record writes e to the journal if there is one. Journal failures are
// logged and never interrupt the protocol.
func (u *UCI) record(ctx context.Context, e storage.Entry) {
	if u.journal == nil {
		return
	}
	if err := u.journal.Record(ctx, e); err != nil {
		u.log.Warn().Err(err).Str("kind", e.Kind).Msg("journal-write-failed")
	}
}
