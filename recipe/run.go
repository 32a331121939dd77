package recipe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kilnbuild/kiln/internal/ctxlog"
	"github.com/kilnbuild/kiln/internal/dag"
)

// RunOption configures a single run.
type RunOption func(*runConfig)

type runConfig struct {
	concurrency int
	args        []string
}

// WithConcurrency bounds the number of actions running at once within a
// batch. The default of 1 executes fully sequentially, in registration
// order within each batch.
func WithConcurrency(n int) RunOption {
	return func(c *runConfig) { c.concurrency = n }
}

// WithArgs binds the root recipe's argument tuple. Only meaningful when
// the root is invocable.
func WithArgs(args ...string) RunOption {
	return func(c *runConfig) { c.args = args }
}

// Run resolves all references (once per registry), computes the active
// subset of root's dependency closure, orders it into depth batches and
// executes them. Process arguments are not consulted; hosts wanting CLI
// behavior use kiln.Main.
//
// All graph state is scoped to this call and discarded afterwards, so a
// recipe action may itself invoke Run for another root.
func (r *Registry) Run(ctx context.Context, root Ref, opts ...RunOption) error {
	cfg := runConfig{concurrency: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := ctxlog.FromContext(ctx)

	if err := r.resolve(ctx); err != nil {
		return err
	}

	rootRec, err := r.rootRecipe(root)
	if err != nil {
		return err
	}
	if err := checkArity(rootRec, cfg.args); err != nil {
		return err
	}

	graph, rootID, err := buildInstances(rootRec, cfg.args)
	if err != nil {
		return err
	}
	if path := graph.FindCycle(rootID); path != nil {
		return &CycleError{Path: path}
	}

	active := graph.ActiveSet(ctx, rootID)
	levels := graph.Levels(rootID, active)
	if len(levels) == 0 {
		logger.Info("nothing to do", "recipe", rootRec.name)
		return nil
	}

	activeCount := 0
	for _, ok := range active {
		if ok {
			activeCount++
		}
	}
	logger.Debug("run plan computed",
		"recipe", rootRec.name, "instances", graph.Len(), "active", activeCount, "batches", len(levels))

	if err := dag.NewExecutor(levels, cfg.concurrency).Run(ctx); err != nil {
		var nodeErr *dag.NodeError
		if errors.As(err, &nodeErr) {
			return &ActionError{Name: nodeErr.Label, Err: nodeErr.Err}
		}
		return err
	}
	return nil
}

// rootRecipe resolves the run's root reference. Unlike dependency
// references, the root must resolve to exactly one recipe.
func (r *Registry) rootRecipe(root Ref) (*Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	targets, err := r.lookupLocked(&Recipe{name: "(run root)"}, root)
	if err != nil {
		return nil, err
	}
	if len(targets) != 1 {
		return nil, &ReferenceError{From: "(run root)", Ref: root.String()}
	}
	return targets[0], nil
}

// buildInstances expands the dependency closure of (root, args) into the
// run graph. Instances are keyed on recipe identity plus bound argument
// tuple: two differently parameterized dependencies on the same invocable
// recipe become two independent nodes.
func buildInstances(root *Recipe, args []string) (*dag.Graph, string, error) {
	graph := dag.New()

	var add func(rec *Recipe, args []string) (string, error)
	add = func(rec *Recipe, args []string) (string, error) {
		id := instanceID(rec, args)
		if graph.Node(id) != nil {
			return id, nil
		}
		if err := graph.AddNode(&dag.Node{
			ID:         id,
			Label:      instanceLabel(rec, args),
			Order:      rec.id,
			Conditions: conditionFuncs(rec),
			Run:        actionFunc(rec, args),
		}); err != nil {
			return "", err
		}
		for _, e := range rec.edges {
			depID, err := add(e.to, e.args)
			if err != nil {
				return "", err
			}
			if err := graph.AddDep(id, depID); err != nil {
				return "", err
			}
		}
		return id, nil
	}

	rootID, err := add(root, args)
	if err != nil {
		return nil, "", err
	}
	return graph, rootID, nil
}

func instanceID(rec *Recipe, args []string) string {
	// Recipe identity is the registration slot, not the (possibly shared)
	// name. Each argument is quoted so that tuples differing only in how
	// characters are split across elements stay distinct.
	var b strings.Builder
	fmt.Fprintf(&b, "%d", rec.id)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(a))
	}
	return b.String()
}

func instanceLabel(rec *Recipe, args []string) string {
	if len(args) == 0 {
		return rec.name
	}
	return fmt.Sprintf("%s(%s)", rec.name, strings.Join(args, ", "))
}

func conditionFuncs(rec *Recipe) []func() bool {
	if len(rec.conditions) == 0 {
		return nil
	}
	funcs := make([]func() bool, len(rec.conditions))
	for i, cond := range rec.conditions {
		funcs[i] = cond
	}
	return funcs
}

func actionFunc(rec *Recipe, args []string) func(ctx context.Context) error {
	if rec.kind == Invocable {
		bound := append([]string(nil), args...)
		return func(ctx context.Context) error { return rec.invoke(ctx, bound) }
	}
	return func(ctx context.Context) error { return rec.action(ctx) }
}
