package recipe

import (
	"fmt"
	"strings"
)

// RegistrationError reports a duplicate invocable name or a malformed
// definition, detected synchronously at Register time.
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid recipe definition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid recipe definition %q: %s", e.Name, e.Reason)
}

// ReferenceError reports a symbolic reference that could not be resolved to
// exactly the intended recipe set: either the name is unknown, or several
// recipes share it. Candidates lists every same-named recipe when the
// reference is ambiguous.
type ReferenceError struct {
	// From names the recipe whose dependency list holds the bad reference.
	From string
	// Ref is the offending reference, e.g. `recipe "compile_"`.
	Ref string
	// Candidates holds the descriptions of all same-named recipes for an
	// ambiguous name; empty for an unknown reference.
	Candidates []string
}

func (e *ReferenceError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s: dependency on unknown %s", e.From, e.Ref)
	}
	return fmt.Sprintf(
		"%s: dependency on %s is ambiguous between %d recipes (%s); "+
			"declare a hook on the candidates and depend on the hook instead",
		e.From, e.Ref, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// CycleError reports a dependency cycle reachable from the requested root.
// Path holds the instance labels along the cycle, first and last entries
// equal.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// ArityError reports an invocable recipe bound to the wrong number of
// arguments, or arguments bound to an internal recipe.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("recipe %q takes %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// ActionError reports a recipe action that returned an error during
// execution. It marks the run failed but does not interrupt concurrently
// running sibling actions.
type ActionError struct {
	Name string
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("recipe %s failed: %v", e.Name, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
