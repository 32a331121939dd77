// Package recipe implements a dependency-aware recipe runner. Hosts declare
// recipes (units of work with dependencies, hooks and staleness conditions),
// then ask the registry to run a root recipe; the engine resolves symbolic
// references, determines which recipes are outdated, orders them by
// dependency depth and executes independent ones concurrently.
package recipe

import "context"

// Kind distinguishes the two recipe classes. Both share the same graph,
// activation and scheduling machinery; they differ in addressability and
// arguments.
type Kind int

const (
	// Internal recipes take no arguments and may share a name with other
	// internal recipes. A shared name cannot be used as a dependency
	// reference; use a hook or a direct handle instead.
	Internal Kind = iota

	// Invocable recipes carry a fixed argument tuple, bound either where a
	// dependency on them is declared or by the CLI when they are selected
	// as the run's root. Their names must be globally unique.
	Invocable
)

func (k Kind) String() string {
	if k == Invocable {
		return "invocable"
	}
	return "internal"
}

// Condition is a zero-argument staleness predicate. A recipe with at least
// one true condition is considered outdated and will run.
type Condition func() bool

// Action is the body of an internal recipe.
type Action func(ctx context.Context) error

// InvokeAction is the body of an invocable recipe. args has exactly the
// arity declared at registration.
type InvokeAction func(ctx context.Context, args []string) error

// Definition describes a recipe to be registered.
type Definition struct {
	// Name identifies the recipe. Optional for internal recipes backed by
	// a named function, in which case it is inferred from the function.
	Name string

	Kind        Kind
	Description string

	// Hooks are non-unique group labels. They are not nodes; they exist
	// only so other recipes can depend on every carrier of a label.
	Hooks []string

	// Deps are symbolic dependency references, resolved after registration
	// closes so that recipes may be declared in any order.
	Deps []Dep

	Conditions []Condition

	// NArgs is the argument arity of an invocable recipe. Must be zero for
	// internal recipes.
	NArgs int

	// Action is the body of an internal recipe. Exactly one of Action and
	// Invoke must be set, matching Kind.
	Action Action

	// Invoke is the body of an invocable recipe.
	Invoke InvokeAction
}

// Recipe is the registered form of a definition. It is created and owned by
// a Registry; hosts hold it through a Handle.
type Recipe struct {
	id          int
	name        string
	kind        Kind
	description string
	hooks       []string
	deps        []Dep
	conditions  []Condition
	nargs       int
	action      Action
	invoke      InvokeAction

	// edges is populated by the resolver, once, after registration closes.
	edges []edge
}

// edge is a fully resolved dependency: a concrete target recipe plus the
// argument tuple bound at declaration time. Two edges to the same invocable
// recipe with different tuples are distinct dependencies.
type edge struct {
	to   *Recipe
	args []string
}

// Name returns the recipe's registered (or inferred) name.
func (r *Recipe) Name() string { return r.name }

// Kind returns whether the recipe is invocable or internal.
func (r *Recipe) Kind() Kind { return r.kind }

// Description returns the display description.
func (r *Recipe) Description() string { return r.description }

// NArgs returns the declared argument arity (zero for internal recipes).
func (r *Recipe) NArgs() int { return r.nargs }

// Handle is an opaque, always-unambiguous reference to a registered recipe.
type Handle struct {
	r *Recipe
}

// Name returns the name of the referenced recipe.
func (h Handle) Name() string { return h.r.name }

func (h Handle) valid() bool { return h.r != nil }
