package manifest

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/kilnbuild/kiln/internal/ctxlog"
	"github.com/kilnbuild/kiln/recipe"
)

// shellAction builds the recipe body for a manifest block: evaluate the
// command expression with the bound arguments exposed as args.<param>,
// then run it through the shell. A block without a command is a pure
// aggregation recipe and does nothing itself.
func shellAction(b *block) recipe.InvokeAction {
	return func(ctx context.Context, args []string) error {
		if b.Command == nil {
			return nil
		}

		val, diags := b.Command.Value(evalContext(b.Params, args))
		if diags.HasErrors() {
			return fmt.Errorf("evaluating command for recipe %q: %w", b.Name, diags)
		}
		// gohcl decodes an absent optional command as a null expression.
		if val.IsNull() {
			return nil
		}
		val, err := convert.Convert(val, cty.String)
		if err != nil {
			return fmt.Errorf("command for recipe %q is not a string: %w", b.Name, err)
		}
		command := val.AsString()

		ctxlog.FromContext(ctx).Debug("running shell command", "recipe", b.Name, "command", command)
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// evalContext exposes the bound argument tuple as an args object, one
// attribute per declared parameter.
func evalContext(params, args []string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(params))
	for i, p := range params {
		vals[p] = cty.StringVal(args[i])
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"args": cty.ObjectVal(vals)},
	}
}
