package dag

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilnbuild/kiln/internal/ctxlog"
)

// NodeError wraps the error returned by a node's action, naming the
// instance that failed.
type NodeError struct {
	Label string
	Err   error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// Executor runs pre-computed depth levels as concurrency-bounded batches
// with a strict barrier between levels: no instance at depth d+1 starts
// before every instance at depth d has finished.
type Executor struct {
	levels  [][]*Node
	workers int
}

// NewExecutor returns an executor over levels with at most workers
// concurrent actions. workers < 1 means fully sequential.
func NewExecutor(levels [][]*Node, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{levels: levels, workers: workers}
}

// Run executes every level in order. A failing action marks the run failed
// and prevents any later level from starting; sibling actions of the same
// level are not interrupted and run to completion. The first failure is
// returned as a *NodeError. Actions are never retried.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for depth, level := range e.levels {
		logger.Debug("starting batch", "depth", depth, "size", len(level), "workers", e.workers)

		// One errgroup per level is the barrier: Wait returns only when
		// every action of the batch has returned, and its error is only
		// inspected here, at the level boundary. The group carries no
		// cancellation: a failure must not interrupt running siblings.
		var group errgroup.Group
		group.SetLimit(e.workers)
		for _, n := range level {
			n := n
			group.Go(func() error {
				start := time.Now()
				logger.Info("running recipe", "recipe", n.Label, "depth", depth)
				if err := n.Run(ctx); err != nil {
					logger.Error("recipe failed", "recipe", n.Label, "error", err)
					return &NodeError{Label: n.Label, Err: err}
				}
				logger.Debug("recipe finished", "recipe", n.Label, "elapsed", time.Since(start))
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	}
	return nil
}
