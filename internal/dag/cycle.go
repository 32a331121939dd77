package dag

// FindCycle walks the dependency closure of root depth-first and returns
// the labels along the first cycle found, with the repeated node at both
// ends. It returns nil when the closure is acyclic.
//
// Classic three-state DFS: nodes fully explored are never revisited; a
// node met again while still on the active stack closes a cycle.
func (g *Graph) FindCycle(rootID string) []string {
	root := g.nodes[rootID]
	if root == nil {
		return nil
	}

	done := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []*Node

	var visit func(n *Node) []string
	visit = func(n *Node) []string {
		if done[n.ID] {
			return nil
		}
		if onStack[n.ID] {
			return closeCycle(stack, n)
		}

		onStack[n.ID] = true
		stack = append(stack, n)
		for _, dep := range n.deps {
			if path := visit(dep); path != nil {
				return path
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, n.ID)
		done[n.ID] = true
		return nil
	}

	return visit(root)
}

// closeCycle extracts the cycle path from the DFS stack, starting at the
// revisited node and appending it again at the end.
func closeCycle(stack []*Node, repeat *Node) []string {
	start := 0
	for i, n := range stack {
		if n.ID == repeat.ID {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, n := range stack[start:] {
		path = append(path, n.Label)
	}
	return append(path, repeat.Label)
}
