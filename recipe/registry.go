package recipe

import (
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Registry stores recipe definitions and enforces naming invariants at
// registration time. References between recipes are stored verbatim; no
// resolution happens until the first run.
type Registry struct {
	mu      sync.Mutex
	recipes []*Recipe
	byName  map[string][]*Recipe
	byHook  map[string][]*Recipe

	resolveOnce sync.Once
	resolveErr  error
	// resolved is set under mu when the resolver has run; the graph is
	// frozen from then on.
	resolved bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string][]*Recipe),
		byHook: make(map[string][]*Recipe),
	}
}

// Register validates def, inserts it into the registry indices and returns
// a handle for direct references. Invocable names must be unique across the
// registry; internal recipes may share names but such names cannot later be
// used as dependency references.
func (r *Registry) Register(def Definition) (Handle, error) {
	name := def.Name
	if name == "" {
		name = inferName(def)
	}
	if name == "" {
		return Handle{}, &RegistrationError{Reason: "recipe has no name and none could be inferred from its action"}
	}
	for _, hook := range def.Hooks {
		if hook == "" {
			return Handle{}, &RegistrationError{Name: name, Reason: "empty hook label"}
		}
	}

	switch def.Kind {
	case Internal:
		if def.NArgs != 0 {
			return Handle{}, &RegistrationError{Name: name, Reason: "internal recipes take no arguments"}
		}
		if def.Action == nil {
			return Handle{}, &RegistrationError{Name: name, Reason: "internal recipe has no action"}
		}
		if def.Invoke != nil {
			return Handle{}, &RegistrationError{Name: name, Reason: "internal recipe cannot set Invoke; use Action"}
		}
	case Invocable:
		if def.NArgs < 0 {
			return Handle{}, &RegistrationError{Name: name, Reason: "negative argument arity"}
		}
		if def.Invoke == nil {
			return Handle{}, &RegistrationError{Name: name, Reason: "invocable recipe has no invoke action"}
		}
		if def.Action != nil {
			return Handle{}, &RegistrationError{Name: name, Reason: "invocable recipe cannot set Action; use Invoke"}
		}
	default:
		return Handle{}, &RegistrationError{Name: name, Reason: "unknown recipe kind"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// References are resolved exactly once, on the first run; a recipe
	// registered after that would execute with its dependencies missing.
	if r.resolved {
		return Handle{}, &RegistrationError{Name: name, Reason: "registry is frozen after the first run"}
	}

	// Invocable recipes are addressable by name from outside the graph, so
	// their names must not collide with anything. Internal recipes may share
	// names among themselves; such names are simply not resolvable.
	if def.Kind == Invocable && len(r.byName[name]) > 0 {
		return Handle{}, &RegistrationError{Name: name, Reason: "duplicate name; invocable recipe names must be unique"}
	}
	for _, other := range r.byName[name] {
		if other.kind == Invocable {
			return Handle{}, &RegistrationError{Name: name, Reason: "name already taken by an invocable recipe"}
		}
	}

	rec := &Recipe{
		id:          len(r.recipes),
		name:        name,
		kind:        def.Kind,
		description: def.Description,
		hooks:       append([]string(nil), def.Hooks...),
		deps:        append([]Dep(nil), def.Deps...),
		conditions:  append([]Condition(nil), def.Conditions...),
		nargs:       def.NArgs,
		action:      def.Action,
		invoke:      def.Invoke,
	}
	r.recipes = append(r.recipes, rec)
	r.byName[name] = append(r.byName[name], rec)
	for _, hook := range rec.hooks {
		r.byHook[hook] = append(r.byHook[hook], rec)
	}
	return Handle{r: rec}, nil
}

// MustRegister is Register for declaration-style call sites; it panics on a
// malformed definition, which is always a programming error.
func (r *Registry) MustRegister(def Definition) Handle {
	h, err := r.Register(def)
	if err != nil {
		panic(err)
	}
	return h
}

// Invocable returns the invocable recipe registered under name.
func (r *Registry) Invocable(name string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.byName[name] {
		if rec.kind == Invocable {
			return Handle{r: rec}, true
		}
	}
	return Handle{}, false
}

// Info is a listing entry for one registered recipe.
type Info struct {
	Name        string
	Kind        Kind
	Description string
	NArgs       int
}

// List returns every invocable recipe sorted by name, for CLI enumeration.
func (r *Registry) List() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	var infos []Info
	for _, rec := range r.recipes {
		if rec.kind != Invocable {
			continue
		}
		infos = append(infos, Info{
			Name:        rec.name,
			Kind:        rec.kind,
			Description: rec.description,
			NArgs:       rec.nargs,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// inferName derives a recipe name from its action function, mirroring how
// hosts usually name the function after the unit of work.
func inferName(def Definition) string {
	var fn any
	switch {
	case def.Action != nil:
		fn = def.Action
	case def.Invoke != nil:
		fn = def.Invoke
	default:
		return ""
	}
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// Method values and closures carry generated suffixes.
	name = strings.TrimSuffix(name, "-fm")
	if strings.HasPrefix(name, "func") {
		return ""
	}
	return name
}
