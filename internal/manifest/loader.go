// Package manifest loads recipe declarations from HCL files, the
// declarative counterpart to registering recipes in Go code. Every
// manifest recipe is invocable by name from the command line; its action
// runs the declared command through the shell.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/kilnbuild/kiln/internal/ctxlog"
	"github.com/kilnbuild/kiln/recipe"
)

// Load parses the manifest at path and registers its recipes. It returns
// the populated registry and the manifest's default root, nil when the
// manifest declares none.
func Load(ctx context.Context, path string) (*recipe.Registry, *recipe.Handle, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("parsing manifest %s: %w", path, diags)
	}

	var cfg file
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
		return nil, nil, fmt.Errorf("decoding manifest %s: %w", path, diags)
	}
	logger.Debug("manifest decoded", "path", path, "recipes", len(cfg.Recipes))

	reg := recipe.New()
	for _, b := range cfg.Recipes {
		def := recipe.Definition{
			Name:        b.Name,
			Kind:        recipe.Invocable,
			Description: b.Description,
			Hooks:       b.Hooks,
			NArgs:       len(b.Params),
			Invoke:      shellAction(b),
		}
		def.Deps = append(def.Deps, recipe.NameDeps(b.RecipeDeps...)...)
		def.Deps = append(def.Deps, recipe.HookDeps(b.HookDeps...)...)
		if len(b.Sources) > 0 || len(b.Targets) > 0 {
			def.Conditions = []recipe.Condition{recipe.FileCondition(b.Sources, b.Targets)}
		}
		if _, err := reg.Register(def); err != nil {
			return nil, nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	}

	if cfg.Default == "" {
		return reg, nil, nil
	}
	h, ok := reg.Invocable(cfg.Default)
	if !ok {
		return nil, nil, fmt.Errorf("manifest %s: default recipe %q is not declared", path, cfg.Default)
	}
	return reg, &h, nil
}
