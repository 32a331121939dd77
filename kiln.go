// Package kiln is the CLI-mode entry point for host programs that declare
// their recipes in Go. A typical build program registers its recipes
// against a recipe.Registry and hands control to Main, which parses the
// process arguments, selects the root recipe and exits with the run's
// status.
package kiln

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kilnbuild/kiln/internal/cli"
	"github.com/kilnbuild/kiln/recipe"
)

// Version is the kiln release version.
const Version = cli.Version

// Main runs reg in CLI mode and exits the process. defaultRoot, when
// non-nil, is the recipe run when no recipe name is given on the command
// line. It does not return.
func Main(reg *recipe.Registry, defaultRoot *recipe.Handle) {
	os.Exit(MainArgs(reg, defaultRoot, os.Args[1:], os.Stdout, os.Stderr))
}

// MainArgs is Main with the process surface made explicit, returning the
// exit status instead of exiting.
func MainArgs(reg *recipe.Registry, defaultRoot *recipe.Handle, args []string, stdout, stderr io.Writer) int {
	name := "kiln"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	opts, done, err := cli.Parse(name, args, stderr)
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if done {
		return 0
	}
	return cli.Execute(reg, defaultRoot, opts, stdout, stderr)
}
