package manifest

import "github.com/hashicorp/hcl/v2"

// file is the top-level structure of a kiln.hcl manifest.
type file struct {
	// Default names the recipe run when the command line selects none.
	Default string   `hcl:"default,optional"`
	Recipes []*block `hcl:"recipe,block"`
}

// block is a single `recipe "name" { ... }` declaration.
type block struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Hooks       []string `hcl:"hooks,optional"`
	RecipeDeps  []string `hcl:"recipe_deps,optional"`
	HookDeps    []string `hcl:"hook_deps,optional"`

	// Params declares the recipe's argument names; a non-empty list makes
	// the recipe parameterized and its command expression may reference
	// args.<param>.
	Params []string `hcl:"params,optional"`

	// Sources and Targets attach the canonical file-staleness condition.
	Sources []string `hcl:"sources,optional"`
	Targets []string `hcl:"targets,optional"`

	// Command is kept as an unevaluated expression; it is evaluated at
	// execution time against the bound argument values.
	Command hcl.Expression `hcl:"command,optional"`
}
