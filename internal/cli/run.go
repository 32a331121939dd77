package cli

import (
	"context"
	"errors"
	"io"

	"github.com/kilnbuild/kiln/internal/ctxlog"
	"github.com/kilnbuild/kiln/internal/ui"
	"github.com/kilnbuild/kiln/recipe"
)

// Execute drives one CLI-mode invocation: enumeration flags, root
// selection among invocable recipes, the run itself, and error rendering.
// It returns the process exit status: 0 on success, 1 on any resolution,
// validation or action failure.
func Execute(reg *recipe.Registry, defaultRoot *recipe.Handle, opts *Options, stdout, stderr io.Writer) int {
	if opts.NoColor {
		ui.DisableColor()
	}
	ui.DisableColorFromEnv()
	printer := ui.New(stderr)

	if opts.Version {
		io.WriteString(stdout, "kiln v"+Version+"\n")
		return 0
	}

	if opts.List || opts.ListAll {
		var entries []ui.Entry
		for _, info := range reg.List() {
			entries = append(entries, ui.Entry{Name: info.Name, Description: info.Description})
		}
		ui.ListRecipes(stdout, entries, opts.ListAll)
		return 0
	}

	var root recipe.Ref
	switch {
	case opts.Root != "":
		h, ok := reg.Invocable(opts.Root)
		if !ok {
			printer.Error("no invocable recipe named %q", opts.Root)
			printer.Hint("use --list-all to enumerate the available recipes")
			return 1
		}
		root = recipe.ByHandle(h)
	case defaultRoot != nil:
		root = recipe.ByHandle(*defaultRoot)
	default:
		printer.Error("no recipe selected and no default recipe declared")
		printer.Hint("use --list-all to enumerate the available recipes")
		return 1
	}

	logger := NewLogger(opts, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	err := reg.Run(ctx, root,
		recipe.WithConcurrency(opts.Threads),
		recipe.WithArgs(opts.RootArgs...))
	if err != nil {
		printer.Error("%v", err)
		printHint(printer, err)
		return 1
	}
	return 0
}

// printHint adds a remediation hint for the error classes where one
// exists.
func printHint(printer *ui.Printer, err error) {
	var refErr *recipe.ReferenceError
	var arityErr *recipe.ArityError
	var cycleErr *recipe.CycleError
	switch {
	case errors.As(err, &refErr) && len(refErr.Candidates) > 0:
		printer.Hint("several recipes share that name; attach a hook to them and depend on the hook")
	case errors.As(err, &arityErr):
		printer.Hint("arguments for the recipe go after a literal --, e.g. `kiln %s -- ...`", arityErr.Name)
	case errors.As(err, &cycleErr):
		printer.Hint("a recipe cannot depend on itself, not even through hooks")
	}
}
