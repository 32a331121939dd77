package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kilnbuild/kiln/internal/cli"
	"github.com/kilnbuild/kiln/internal/ctxlog"
	"github.com/kilnbuild/kiln/internal/manifest"
	"github.com/kilnbuild/kiln/internal/ui"
)

// main is the entrypoint for the standalone kiln binary, which reads its
// recipes from an HCL manifest instead of compiled-in Go declarations.
func main() {
	// Minimal logger until flags decide the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run encapsulates the binary's logic for easier testing and exit-code
// handling.
func run(args []string, stdout, stderr io.Writer) int {
	opts, done, err := cli.Parse("kiln", args, stderr)
	if err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if done {
		return 0
	}

	// Version does not need a manifest to exist.
	if opts.Version {
		io.WriteString(stdout, "kiln v"+cli.Version+"\n")
		return 0
	}

	if opts.NoColor {
		ui.DisableColor()
	}
	ui.DisableColorFromEnv()
	printer := ui.New(stderr)

	ctx := ctxlog.WithLogger(context.Background(), cli.NewLogger(opts, stderr))
	reg, defaultRoot, err := manifest.Load(ctx, opts.File)
	if err != nil {
		printer.Error("%v", err)
		return 1
	}

	return cli.Execute(reg, defaultRoot, opts, stdout, stderr)
}
