package engine

import "sync"

// workQueue is the FIFO of subtree roots shared by the fan-out and the
// workers of one build.
type workQueue struct {
	mu    sync.Mutex
	nodes []*Node
}

func (q *workQueue) push(n *Node) {
	q.mu.Lock()
	q.nodes = append(q.nodes, n)
	q.mu.Unlock()
}

func (q *workQueue) pop() (*Node, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.nodes) == 0 {
		return nil, false
	}
	n := q.nodes[0]
	q.nodes[0] = nil
	q.nodes = q.nodes[1:]
	return n, true
}

func (q *workQueue) front() (*Node, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.nodes) == 0 {
		return nil, false
	}
	return q.nodes[0], true
}

func (q *workQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.nodes)
}
