package engine

// Backpropagate runs minimax over whatever tree remains below root. Nodes
// with children take the best child value for their side to move; childless
// nodes keep the value they already carry.
func Backpropagate(root *Node) {
	if len(root.children) == 0 {
		return
	}
	for _, c := range root.children {
		Backpropagate(c)
	}
	root.Value = root.minimax()
}
