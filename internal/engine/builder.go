package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/bogfish/internal/board"
)

// Trees shallower than this are always built sequentially.
const minParallelDepth = 3

// Stats describes one build.
type Stats struct {
	Nodes    uint64 // nodes created, root included
	Leaves   uint64 // static evaluations
	Frontier int    // queued subtree roots when the workers started
	Workers  int
	Elapsed  time.Duration
}

// Builder expands a game tree to a fixed depth and scores it with minimax.
// A Builder is safe for concurrent use; each build gets its own work queue.
type Builder struct {
	cfg  Config
	eval Evaluator
	log  zerolog.Logger
}

// NewBuilder validates cfg and returns a builder for it.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, eval: cfg.evaluator(), log: cfg.Logger}, nil
}

// BuildTree builds and scores the tree below pos with the material
// evaluator. The returned root keeps its direct children; everything deeper
// has been reduced to values.
func BuildTree(pos board.Position, side board.Color, maxDepth, threads int) (*Node, error) {
	b, err := NewBuilder(Config{Threads: threads, Depth: maxDepth, Evaluator: Material})
	if err != nil {
		return nil, err
	}
	root, _, err := b.Build(pos, side)
	return root, err
}

// Build expands pos with side to move. The root's value is the minimax
// value of the position and its children carry the value of each move.
// A root without children is a terminal position.
func (b *Builder) Build(pos board.Position, side board.Color) (*Node, Stats, error) {
	start := time.Now()
	r := &build{
		depth:   b.cfg.Depth,
		threads: b.cfg.Threads,
		eval:    b.eval,
		log:     b.log,
	}
	r.nodes.Add(1)

	root := newRoot(pos, side)

	var err error
	if r.depth < minParallelDepth || r.threads == 1 {
		b.log.Debug().Int("depth", r.depth).Msg("build-sequential")
		r.expandFull(root, true)
	} else {
		b.log.Debug().Int("depth", r.depth).Int("threads", r.threads).Msg("build-parallel")
		err = r.parallel(root)
	}

	stats := Stats{
		Nodes:    r.nodes.Load(),
		Leaves:   r.leaves.Load(),
		Frontier: r.frontier,
		Workers:  r.workers,
		Elapsed:  time.Since(start),
	}
	if err != nil {
		return nil, stats, err
	}

	b.log.Info().
		Int("depth", r.depth).
		Int("value", root.Value).
		Uint64("nodes", stats.Nodes).
		Dur("elapsed", stats.Elapsed).
		Msg("build-done")

	return root, stats, nil
}

// build holds the state of one Build call.
type build struct {
	depth   int
	threads int
	eval    Evaluator
	log     zerolog.Logger

	queue    workQueue
	frontier int
	workers  int

	nodes  atomic.Uint64
	leaves atomic.Uint64
}

// generate attaches the children of n and counts them.
func (r *build) generate(n *Node) {
	n.expand()
	r.nodes.Add(uint64(len(n.children)))
}

// expandFull builds the subtree of n depth first and sets its value. Unless
// retain is set, the children are dropped once the value is known.
func (r *build) expandFull(n *Node, retain bool) {
	if int(n.Depth) < r.depth {
		r.generate(n)
		for _, c := range n.children {
			r.expandFull(c, false)
		}
	}

	if len(n.children) == 0 && !n.Evaluated {
		r.leaves.Add(1)
	}
	n.aggregate(r.eval)

	if !retain {
		n.collapse()
	}
}

// parallel fans the root out breadth first until there is a subtree per
// worker, lets the workers drain the queue, then merges the fan-out layers
// into the root.
func (r *build) parallel(root *Node) error {
	r.queue.push(root)

	for r.queue.size() < r.threads {
		front, ok := r.queue.front()
		if !ok {
			// Every line ended in mate or stalemate before the frontier
			// filled up, so the fan-out tree is already complete.
			r.log.Debug().Msg("fan-out-exhausted")
			r.merge(root)
			return nil
		}
		if int(front.Depth) >= r.depth {
			break
		}

		n, _ := r.queue.pop()
		r.generate(n)
		if len(n.children) == 0 && !n.Evaluated {
			r.leaves.Add(1)
			n.evaluate(r.eval)
		}
		for _, c := range n.children {
			r.queue.push(c)
		}
	}

	r.frontier = r.queue.size()
	r.workers = r.threads
	r.log.Debug().Int("frontier", r.frontier).Int("workers", r.workers).Msg("fan-out-done")

	var g errgroup.Group
	for w := 0; w < r.workers; w++ {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					if e, ok := p.(error); ok {
						err = fmt.Errorf("worker %d: %w", w, e)
					} else {
						err = fmt.Errorf("worker %d: %v", w, p)
					}
				}
			}()

			subtrees := 0
			for {
				n, ok := r.queue.pop()
				if !ok {
					break
				}
				r.expandFull(n, false)
				subtrees++
			}
			r.log.Debug().Int("worker", w).Int("subtrees", subtrees).Msg("worker-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.merge(root)
	return nil
}

// merge scores the fan-out layers and keeps only the root's children.
func (r *build) merge(root *Node) {
	Backpropagate(root)
	for _, c := range root.children {
		c.collapse()
	}
}
