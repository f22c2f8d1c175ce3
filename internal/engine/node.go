package engine

import (
	"fmt"

	"github.com/hailam/bogfish/internal/board"
)

const (
	// MaxDepth is the deepest ply a Record can describe.
	MaxDepth = 31

	// MaxChildren is the largest number of legal moves any chess position
	// has. NumChildren is a uint8, so the ceiling fits with room to spare.
	MaxChildren = 218
)

// Record describes the move that produced a node.
type Record struct {
	Depth       uint8
	Side        board.Color // side to move at this node
	From        board.Square
	To          board.Square
	Piece       board.PieceType
	NumChildren uint8 // children generated, kept after collapse
	Evaluated   bool
}

// Node is one position in the search tree. A node owns its children; the
// parent pointer is only followed to rebuild the path from the root.
type Node struct {
	Position board.Position
	Record
	Value int

	children []*Node
	parent   *Node
}

func newRoot(pos board.Position, side board.Color) *Node {
	return &Node{
		Position: pos,
		Record: Record{
			Side:  side,
			From:  board.NoSquare,
			To:    board.NoSquare,
			Piece: board.NoPieceType,
		},
	}
}

// Children returns the child nodes in generation order.
func (n *Node) Children() []*Node { return n.children }

// Len returns the number of children currently attached.
func (n *Node) Len() int { return len(n.children) }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Move returns the move that led to this node. The root returns a move with
// NoSquare on both ends.
func (n *Node) Move() board.Move {
	return board.Move{From: n.From, To: n.To, Piece: n.Piece}
}

// BestChildren returns the children whose value equals the node's value.
// It is empty for a childless node.
func (n *Node) BestChildren() []*Node {
	var best []*Node
	for _, c := range n.children {
		if c.Value == n.Value {
			best = append(best, c)
		}
	}
	return best
}

// Size counts the nodes in the subtree rooted at n, n included.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

// Path returns the moves from the root to n.
func (n *Node) Path() []board.Move {
	var moves []board.Move
	for cur := n; cur.parent != nil; cur = cur.parent {
		moves = append(moves, cur.Move())
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// Replay plays the path from the root to n on base and returns the result.
// With the root position as base it reproduces n.Position.
func (n *Node) Replay(base board.Position) board.Position {
	var chain []*Node
	for cur := n; cur.parent != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		base.Apply(c.From, c.Piece, c.parent.Side, c.To)
	}
	return base
}

// expand attaches one child per legal move of the side to move. A mated
// node gets the mate score and is marked evaluated instead.
func (n *Node) expand() {
	succ := n.Position.Successors(n.Side)
	if len(succ) > MaxChildren {
		panic(fmt.Errorf("%w: %d moves at depth %d", ErrBranchingFactor, len(succ), n.Depth))
	}
	if int(n.Depth)+1 > MaxDepth {
		panic(fmt.Errorf("%w: child of depth %d", ErrInvalidDepth, n.Depth))
	}

	if len(succ) == 0 {
		if n.Position.InCheck(n.Side) {
			n.Value = mateValue(n.Side)
			n.Evaluated = true
		}
		return
	}

	n.children = make([]*Node, len(succ))
	for i, s := range succ {
		n.children[i] = &Node{
			Position: s.Position,
			Record: Record{
				Depth: n.Depth + 1,
				Side:  n.Side.Other(),
				From:  s.Move.From,
				To:    s.Move.To,
				Piece: s.Move.Piece,
			},
			parent: n,
		}
	}
	n.NumChildren = uint8(len(succ))
}

// evaluate assigns the static value once.
func (n *Node) evaluate(eval Evaluator) {
	if n.Evaluated {
		return
	}
	n.Value = eval.Evaluate(&n.Position)
	n.Evaluated = true
}

// aggregate sets the value of a node from its children, or from the
// evaluator when it has none.
func (n *Node) aggregate(eval Evaluator) {
	if len(n.children) == 0 {
		n.evaluate(eval)
		return
	}
	n.Value = n.minimax()
}

// minimax returns the best child value for the side to move: the maximum
// for White, the minimum for Black. The node must have children.
func (n *Node) minimax() int {
	best := n.children[0].Value
	for _, c := range n.children[1:] {
		if n.Side == board.White && c.Value > best {
			best = c.Value
		}
		if n.Side == board.Black && c.Value < best {
			best = c.Value
		}
	}
	return best
}

// collapse drops the subtree below n and keeps only its value.
func (n *Node) collapse() {
	n.children = nil
}
