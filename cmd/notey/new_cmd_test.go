package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdCreatesUUIDNamedFile(t *testing.T) {
	dir := t.TempDir()
	newDir = dir
	t.Cleanup(func() { newDir = "." })

	out := new(bytes.Buffer)
	newCmd.SetOut(out)
	require.NoError(t, newCmd.RunE(newCmd, []string{"My Title"}))

	path := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(path, dir), "path %q should be under %q", path, dir)
	require.True(t, strings.HasSuffix(path, ".md"), "path %q should end in .md", path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# My Title\n", string(content))
}

func TestNewCmdDefaultTitle(t *testing.T) {
	dir := t.TempDir()
	newDir = dir
	t.Cleanup(func() { newDir = "." })

	out := new(bytes.Buffer)
	newCmd.SetOut(out)
	require.NoError(t, newCmd.RunE(newCmd, nil))

	path := strings.TrimSpace(out.String())
	content, err := os.ReadFile(filepath.Clean(path))
	require.NoError(t, err)
	assert.Equal(t, "# Untitled note\n", string(content))
}
