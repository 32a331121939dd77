package recipe

import "fmt"

// refKind tags the variant held by a Ref.
type refKind int

const (
	refHandle refKind = iota
	refName
	refHook
)

// Ref is a symbolic reference to one or more recipes: a direct handle, a
// recipe name, or a hook label. Refs are stored verbatim at registration
// and resolved in a single pass after registration closes, which is what
// allows forward references and dynamically generated recipes.
type Ref struct {
	kind   refKind
	handle Handle
	name   string
	hook   string
}

// ByHandle references a recipe directly. Always unambiguous.
func ByHandle(h Handle) Ref {
	return Ref{kind: refHandle, handle: h}
}

// ByName references whichever single recipe is registered under name.
// Resolution fails if the name is unknown or shared by several recipes.
func ByName(name string) Ref {
	return Ref{kind: refName, name: name}
}

// ByHook references every recipe carrying the hook label. An empty carrier
// set resolves to zero dependencies.
func ByHook(hook string) Ref {
	return Ref{kind: refHook, hook: hook}
}

func (r Ref) String() string {
	switch r.kind {
	case refHandle:
		return fmt.Sprintf("recipe %q", r.handle.r.name)
	case refName:
		return fmt.Sprintf("recipe %q", r.name)
	default:
		return fmt.Sprintf("hook %q", r.hook)
	}
}

// Dep is a dependency declaration: a reference plus the argument tuple to
// bind when the target is invocable.
type Dep struct {
	Ref  Ref
	Args []string
}

// On declares a dependency on a directly held recipe, binding args if the
// target is invocable.
func On(h Handle, args ...string) Dep {
	return Dep{Ref: ByHandle(h), Args: args}
}

// OnName declares a dependency on the recipe with the given unique name.
func OnName(name string, args ...string) Dep {
	return Dep{Ref: ByName(name), Args: args}
}

// OnHook declares a dependency on every carrier of a hook.
func OnHook(hook string) Dep {
	return Dep{Ref: ByHook(hook)}
}

// NameDeps expands a list of names into one dependency per element.
func NameDeps(names ...string) []Dep {
	deps := make([]Dep, 0, len(names))
	for _, n := range names {
		deps = append(deps, OnName(n))
	}
	return deps
}

// HookDeps expands a list of hooks into one dependency per element.
func HookDeps(hooks ...string) []Dep {
	deps := make([]Dep, 0, len(hooks))
	for _, h := range hooks {
		deps = append(deps, OnHook(h))
	}
	return deps
}
