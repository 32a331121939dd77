package dag

import "sort"

// Levels turns the active subgraph into ordered execution batches.
// depth(n) is 0 when n has no active dependencies, else one more than the
// deepest active dependency; instances sharing a depth have no ordering
// constraint between them and form one batch. Depth is the dependency
// longest path, so executing batches in order with a barrier between them
// can never violate a true ordering constraint.
//
// Within a batch, instances keep registration order, which is the
// execution order when concurrency is disabled.
func (g *Graph) Levels(rootID string, active map[string]bool) [][]*Node {
	root := g.nodes[rootID]
	if root == nil || !active[rootID] {
		return nil
	}

	depth := make(map[string]int)
	var assign func(n *Node) int
	assign = func(n *Node) int {
		if d, ok := depth[n.ID]; ok {
			return d
		}
		d := 0
		for _, dep := range n.deps {
			if !active[dep.ID] {
				continue
			}
			if dd := assign(dep) + 1; dd > d {
				d = dd
			}
		}
		depth[n.ID] = d
		return d
	}

	// Assign depths across the active closure reachable from the root.
	var walk func(n *Node)
	seen := make(map[string]bool)
	walk = func(n *Node) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		if active[n.ID] {
			assign(n)
		}
		for _, dep := range n.deps {
			walk(dep)
		}
	}
	walk(root)

	maxDepth := 0
	for id, d := range depth {
		if active[id] && d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]*Node, maxDepth+1)
	for id, d := range depth {
		if active[id] {
			levels[d] = append(levels[d], g.nodes[id])
		}
	}
	for _, level := range levels {
		sort.Slice(level, func(i, j int) bool { return level[i].Order < level[j].Order })
	}
	return levels
}
