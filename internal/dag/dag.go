// Package dag holds the run-scoped execution graph: recipe instances as
// nodes, resolved dependencies as arcs. It provides cycle detection,
// activation (staleness) evaluation, depth-based level assignment and the
// concurrency-bounded batch executor.
//
// The package knows nothing about recipes themselves: nodes carry opaque
// condition and action closures.
package dag

import (
	"context"
	"fmt"
)

// Node is a single recipe instance: one (recipe, bound-argument-tuple)
// pair. The same recipe bound to two different tuples yields two nodes.
type Node struct {
	// ID uniquely identifies the instance within one run.
	ID string
	// Label is the human-readable form used in log lines and errors.
	Label string
	// Order is the registration order, used for deterministic scheduling
	// within a level when concurrency is disabled.
	Order int
	// Conditions are the instance's staleness predicates.
	Conditions []func() bool
	// Run executes the instance's action.
	Run func(ctx context.Context) error

	deps []*Node
}

// Deps returns the nodes this node depends on, in declaration order.
func (n *Node) Deps() []*Node { return n.deps }

// Graph is a directed graph of recipe instances. It is built once per run
// and read-only afterwards; none of its methods are safe for concurrent
// mutation.
type Graph struct {
	nodes map[string]*Node
	order []*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode inserts n. Inserting a duplicate ID is a programming error in
// the caller's instance expansion.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("duplicate node %q", n.ID)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n)
	return nil
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// AddDep records that node id depends on node depID. Both must exist.
func (g *Graph) AddDep(id, depID string) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("node not found: %q", id)
	}
	d, ok := g.nodes[depID]
	if !ok {
		return fmt.Errorf("dependency node not found: %q", depID)
	}
	n.deps = append(n.deps, d)
	return nil
}
