package dag

import (
	"context"

	"github.com/kilnbuild/kiln/internal/ctxlog"
)

// ActiveSet computes which instances in root's closure must run. An
// instance is active iff it has no conditions and no dependencies, or at
// least one condition evaluates true, or at least one of its dependencies
// is active.
//
// Evaluation is depth-first and memoized per instance, so a diamond (the
// same instance reached via several paths) evaluates its conditions at
// most once per run. The graph must already be known acyclic; call
// FindCycle first.
func (g *Graph) ActiveSet(ctx context.Context, rootID string) map[string]bool {
	logger := ctxlog.FromContext(ctx)
	memo := make(map[string]bool)

	var eval func(n *Node) bool
	eval = func(n *Node) bool {
		if active, ok := memo[n.ID]; ok {
			return active
		}

		active := false
		switch {
		case len(n.Conditions) == 0 && len(n.deps) == 0:
			// Unconditional leaves always run; a run must at least do the
			// requested root's own work when nothing gates it.
			active = true
		default:
			for _, cond := range n.Conditions {
				if cond() {
					active = true
					break
				}
			}
			if !active {
				for _, dep := range n.deps {
					// No short-circuit here: every dependency in the closure
					// must be evaluated (and memoized) exactly once so that
					// active dependencies deeper in the graph still run.
					if eval(dep) {
						active = true
					}
				}
			} else {
				for _, dep := range n.deps {
					eval(dep)
				}
			}
		}

		memo[n.ID] = active
		logger.Debug("activation evaluated", "instance", n.Label, "active", active)
		return active
	}

	root := g.nodes[rootID]
	if root == nil {
		return memo
	}
	eval(root)
	return memo
}
