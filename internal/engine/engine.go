package engine

import (
	"sync"
	"time"

	"lukechampine.com/frand"

	"github.com/hailam/bogfish/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Best  []board.Move
}

// Result is the outcome of one search.
type Result struct {
	Root  *Node
	Best  []*Node // children of Root holding the root value
	Value int
	Stats Stats
}

// Moves returns the moves of the best set.
func (r Result) Moves() []board.Move {
	moves := make([]board.Move, len(r.Best))
	for i, n := range r.Best {
		moves[i] = n.Move()
	}
	return moves
}

// Choose picks one of the best moves at random. It reports false for a
// terminal position.
func (r Result) Choose() (*Node, bool) {
	return Choose(r.Best)
}

// Choose picks a node uniformly at random.
func Choose(nodes []*Node) (*Node, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[frand.Intn(len(nodes))], true
}

// Engine wraps a Builder whose settings can change between searches.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	// Callbacks
	OnInfo func(SearchInfo)
}

// New creates an engine with the given configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetThreads changes the worker count for later searches.
func (e *Engine) SetThreads(n int) error {
	return e.update(func(c *Config) { c.Threads = n })
}

// SetDepth changes the search depth for later searches.
func (e *Engine) SetDepth(d int) error {
	return e.update(func(c *Config) { c.Depth = d })
}

// SetEvaluator changes the leaf evaluator for later searches.
func (e *Engine) SetEvaluator(ev Evaluator) {
	e.mu.Lock()
	e.cfg.Evaluator = ev
	e.mu.Unlock()
}

func (e *Engine) update(fn func(*Config)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	e.cfg = next
	return nil
}

// Search builds the tree for pos with side to move at the configured depth.
func (e *Engine) Search(pos board.Position, side board.Color) (Result, error) {
	return e.SearchDepth(pos, side, e.Config().Depth)
}

// SearchDepth is Search with an explicit depth.
func (e *Engine) SearchDepth(pos board.Position, side board.Color, depth int) (Result, error) {
	cfg := e.Config()
	cfg.Depth = depth

	b, err := NewBuilder(cfg)
	if err != nil {
		return Result{}, err
	}
	root, stats, err := b.Build(pos, side)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Root:  root,
		Best:  root.BestChildren(),
		Value: root.Value,
		Stats: stats,
	}

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth: depth,
			Score: res.Value,
			Nodes: stats.Nodes,
			Time:  stats.Elapsed,
			Best:  res.Moves(),
		})
	}
	return res, nil
}
