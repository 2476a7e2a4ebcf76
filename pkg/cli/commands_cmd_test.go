package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCommands_CollectsLeaves(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rootCmd := newRootCmd()

	entries := walkCommands(rootCmd, "")
	require.NotEmpty(t, entries)

	paths := make(map[string]CommandEntry, len(entries))
	for _, e := range entries {
		// Only leaves are listed.
		assert.False(t, strings.HasSuffix(e.Path, " "), e.Path)
		paths[e.Path] = e
	}

	for _, want := range []string{
		"auth login",
		"auth whoami",
		"attendance record",
		"attendance export",
		"absence create",
		"qr scan",
		"role update",
		"config set-profile",
	} {
		_, ok := paths[want]
		assert.True(t, ok, "missing command %q", want)
	}

	// Group is the first path segment.
	assert.Equal(t, "attendance", paths["attendance record"].Group)

	// Required flags carry the annotation through.
	var found bool
	for _, f := range paths["auth login"].Flags {
		if f.Name == "email" {
			found = true
			assert.True(t, f.Required)
		}
	}
	assert.True(t, found, "auth login should expose --email")
}

func TestWalkCommands_SkipsCompletionAndHelp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	entries := walkCommands(newRootCmd(), "")
	for _, e := range entries {
		assert.NotEqual(t, "completion", e.Group)
		assert.NotEqual(t, "help", e.Group)
	}
}
