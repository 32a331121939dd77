package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context) error { return nil }

func noopInvoke(ctx context.Context, args []string) error { return nil }

func internalDef(name string) Definition {
	return Definition{Name: name, Kind: Internal, Action: noop}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		def    Definition
		reason string
	}{
		{
			name:   "empty hook label",
			def:    Definition{Name: "a", Kind: Internal, Action: noop, Hooks: []string{""}},
			reason: "empty hook",
		},
		{
			name:   "internal recipe with arity",
			def:    Definition{Name: "a", Kind: Internal, Action: noop, NArgs: 2},
			reason: "internal recipes take no arguments",
		},
		{
			name:   "internal recipe without action",
			def:    Definition{Name: "a", Kind: Internal},
			reason: "no action",
		},
		{
			name:   "internal recipe with invoke body",
			def:    Definition{Name: "a", Kind: Internal, Action: noop, Invoke: noopInvoke},
			reason: "cannot set Invoke",
		},
		{
			name:   "invocable recipe without invoke body",
			def:    Definition{Name: "a", Kind: Invocable},
			reason: "no invoke action",
		},
		{
			name:   "invocable recipe with negative arity",
			def:    Definition{Name: "a", Kind: Invocable, Invoke: noopInvoke, NArgs: -1},
			reason: "negative",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Register(tc.def)
			require.Error(t, err)
			var regErr *RegistrationError
			require.ErrorAs(t, err, &regErr)
			assert.Contains(t, regErr.Error(), tc.reason)
		})
	}
}

func TestRegisterNames(t *testing.T) {
	t.Run("duplicate invocable name rejected", func(t *testing.T) {
		reg := New()
		_, err := reg.Register(Definition{Name: "build", Kind: Invocable, Invoke: noopInvoke})
		require.NoError(t, err)
		_, err = reg.Register(Definition{Name: "build", Kind: Invocable, Invoke: noopInvoke})
		assert.ErrorContains(t, err, "must be unique")
	})

	t.Run("internal recipes may share a name", func(t *testing.T) {
		reg := New()
		_, err := reg.Register(internalDef("compile_"))
		require.NoError(t, err)
		_, err = reg.Register(internalDef("compile_"))
		require.NoError(t, err)
	})

	t.Run("invocable cannot take a shared internal name", func(t *testing.T) {
		reg := New()
		_, err := reg.Register(internalDef("compile_"))
		require.NoError(t, err)
		_, err = reg.Register(Definition{Name: "compile_", Kind: Invocable, Invoke: noopInvoke})
		assert.Error(t, err)
	})

	t.Run("internal cannot shadow an invocable name", func(t *testing.T) {
		reg := New()
		_, err := reg.Register(Definition{Name: "build", Kind: Invocable, Invoke: noopInvoke})
		require.NoError(t, err)
		_, err = reg.Register(internalDef("build"))
		assert.ErrorContains(t, err, "already taken by an invocable")
	})
}

func buildAll(ctx context.Context) error { return nil }

func TestRegisterInfersNameFromAction(t *testing.T) {
	reg := New()
	h, err := reg.Register(Definition{Kind: Internal, Action: buildAll})
	require.NoError(t, err)
	assert.Equal(t, "buildAll", h.Name())
}

func TestRegisterAnonymousActionNeedsName(t *testing.T) {
	reg := New()
	_, err := reg.Register(Definition{Kind: Internal, Action: func(ctx context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	reg := New()
	reg.MustRegister(Definition{Name: "zeta", Kind: Invocable, Invoke: noopInvoke, Description: "last"})
	reg.MustRegister(Definition{Name: "alpha", Kind: Invocable, Invoke: noopInvoke})
	reg.MustRegister(internalDef("hidden"))

	infos := reg.List()
	require.Len(t, infos, 2, "internal recipes are not listed")
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.Equal(t, "last", infos[1].Description)
}

func TestInvocableLookup(t *testing.T) {
	reg := New()
	reg.MustRegister(Definition{Name: "build", Kind: Invocable, Invoke: noopInvoke})
	reg.MustRegister(internalDef("clean"))

	_, ok := reg.Invocable("build")
	assert.True(t, ok)
	_, ok = reg.Invocable("clean")
	assert.False(t, ok, "internal recipes are not addressable by name from outside")
	_, ok = reg.Invocable("dne")
	assert.False(t, ok)
}
