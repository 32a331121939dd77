package recipe

import (
	"context"

	"github.com/kilnbuild/kiln/internal/ctxlog"
)

// resolve turns every stored symbolic reference into concrete edges. It
// runs exactly once per registry, triggered lazily by the first run, so
// recipes may be declared in any order and generated recipes can be
// referenced by hook before they all exist.
//
// Resolution is all-or-nothing: any unknown or ambiguous reference fails
// the whole registry before a single action runs.
func (r *Registry) resolve(ctx context.Context) error {
	r.resolveOnce.Do(func() {
		r.resolveErr = r.doResolve(ctx)
	})
	return r.resolveErr
}

func (r *Registry) doResolve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = true

	for _, rec := range r.recipes {
		for _, dep := range rec.deps {
			targets, err := r.lookupLocked(rec, dep.Ref)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				// An empty hook is not an error: the hook's recipes may be
				// generated only under some configurations.
				logger.Warn("hook has no recipes attached", "recipe", rec.name, "ref", dep.Ref.String())
				continue
			}
			for _, target := range targets {
				if err := checkArity(target, dep.Args); err != nil {
					return err
				}
				rec.edges = append(rec.edges, edge{to: target, args: dep.Args})
			}
		}
	}

	logger.Debug("reference resolution complete", "recipes", len(r.recipes))
	return nil
}

// lookupLocked resolves one reference to its target set. Callers hold r.mu.
func (r *Registry) lookupLocked(from *Recipe, ref Ref) ([]*Recipe, error) {
	switch ref.kind {
	case refHandle:
		if !ref.handle.valid() {
			return nil, &ReferenceError{From: from.name, Ref: "nil handle"}
		}
		return []*Recipe{ref.handle.r}, nil
	case refName:
		candidates := r.byName[ref.name]
		switch len(candidates) {
		case 0:
			return nil, &ReferenceError{From: from.name, Ref: ref.String()}
		case 1:
			return candidates, nil
		default:
			descs := make([]string, 0, len(candidates))
			for _, c := range candidates {
				descs = append(descs, c.kind.String()+" recipe "+c.name)
			}
			return nil, &ReferenceError{From: from.name, Ref: ref.String(), Candidates: descs}
		}
	default:
		return r.byHook[ref.hook], nil
	}
}

// checkArity validates the bound argument tuple against the target's
// declared arity before anything executes.
func checkArity(target *Recipe, args []string) error {
	want := 0
	if target.kind == Invocable {
		want = target.nargs
	}
	if len(args) != want {
		return &ArityError{Name: target.name, Want: want, Got: len(args)}
	}
	return nil
}
