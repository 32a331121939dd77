// Package cli parses command-line arguments for CLI-mode runs and drives
// the resulting execution, translating engine errors into exit codes and
// human-readable messages.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Version is the tool version reported by --version.
const Version = "1.0.0"

// ExitError carries a specific process exit code alongside the message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed CLI surface.
type Options struct {
	List      bool
	ListAll   bool
	Verbose   bool
	NoColor   bool
	Version   bool
	Threads   int
	LogFormat string
	File      string

	// Root is the invocable recipe selected by name, empty for the host's
	// default root.
	Root string
	// RootArgs are the arguments after the `--` separator, forwarded
	// verbatim to the root recipe.
	RootArgs []string
}

// Parse processes args. The literal `--` token divides engine flags from
// arguments forwarded to the selected recipe. It returns the options, a
// flag indicating a clean early exit (--help), or an ExitError for flag
// misuse.
func Parse(name string, args []string, output io.Writer) (*Options, bool, error) {
	engineArgs, rootArgs := splitArgs(args)

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, `%[1]s - a dependency-aware recipe runner.

Usage:
  %[1]s [options] [RECIPE] [-- RECIPE_ARGS...]

Arguments:
  RECIPE
    Name of the invocable recipe to run. Defaults to the host's default
    recipe. Arguments after a literal -- are forwarded to the recipe.

Options:
`, name)
		flagSet.PrintDefaults()
	}

	opts := &Options{}
	flagSet.BoolVar(&opts.List, "list", false, "Enumerate invocable recipes that carry a description.")
	flagSet.BoolVar(&opts.ListAll, "list-all", false, "Enumerate every invocable recipe.")
	flagSet.BoolVar(&opts.Verbose, "verbose", false, "Show per-recipe execution log lines.")
	flagSet.BoolVar(&opts.NoColor, "no-color", false, "Disable ANSI styling of output.")
	flagSet.BoolVar(&opts.Version, "version", false, "Print the version and exit.")
	flagSet.IntVar(&opts.Threads, "threads", 1, "Number of recipes to run concurrently within a batch.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Engine log format. Options: 'text' or 'json'.")
	flagSet.StringVar(&opts.File, "file", "kiln.hcl", "Path to the recipe manifest (kiln binary only).")

	if err := flagSet.Parse(engineArgs); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if opts.Threads < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid --threads: must be at least 1"}
	}
	logFormat := strings.ToLower(opts.LogFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid --log-format: must be 'text' or 'json'"}
	}
	opts.LogFormat = logFormat

	switch positional := flagSet.Args(); len(positional) {
	case 0:
	case 1:
		opts.Root = positional[0]
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf(
			"at most one recipe may be selected, got %d; use -- to forward arguments", len(positional))}
	}
	opts.RootArgs = rootArgs

	return opts, false, nil
}

// splitArgs divides the raw argument list at the first literal `--`.
func splitArgs(args []string) (engine, forwarded []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// NewLogger builds the engine's slog logger from the parsed options.
// Verbose runs log at debug level, others only surface warnings; recipe
// output itself always passes through untouched.
func NewLogger(opts *Options, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
