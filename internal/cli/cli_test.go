package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, done, err := Parse("kiln", nil, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, done)
		assert.False(t, opts.List)
		assert.False(t, opts.Verbose)
		assert.Equal(t, 1, opts.Threads)
		assert.Equal(t, "text", opts.LogFormat)
		assert.Empty(t, opts.Root)
		assert.Empty(t, opts.RootArgs)
	})

	t.Run("flags and recipe selection", func(t *testing.T) {
		opts, done, err := Parse("kiln", []string{"--verbose", "--threads=4", "build"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, done)
		assert.True(t, opts.Verbose)
		assert.Equal(t, 4, opts.Threads)
		assert.Equal(t, "build", opts.Root)
	})

	t.Run("separator forwards recipe arguments verbatim", func(t *testing.T) {
		opts, _, err := Parse("kiln", []string{"deploy", "--", "--prod", "eu"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "deploy", opts.Root)
		assert.Equal(t, []string{"--prod", "eu"}, opts.RootArgs)
	})

	t.Run("everything after the first separator is opaque", func(t *testing.T) {
		opts, _, err := Parse("kiln", []string{"--", "a", "--", "b"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Empty(t, opts.Root)
		assert.Equal(t, []string{"a", "--", "b"}, opts.RootArgs)
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		_, done, err := Parse("kiln", []string{"--help"}, &out)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Contains(t, out.String(), "Usage")
	})

	t.Run("invalid flag", func(t *testing.T) {
		_, _, err := Parse("kiln", []string{"--bogus"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid threads", func(t *testing.T) {
		_, _, err := Parse("kiln", []string{"--threads=0"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "--threads")
	})

	t.Run("invalid log format", func(t *testing.T) {
		_, _, err := Parse("kiln", []string{"--log-format=xml"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "log-format")
	})

	t.Run("more than one recipe is rejected", func(t *testing.T) {
		_, _, err := Parse("kiln", []string{"build", "test"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
