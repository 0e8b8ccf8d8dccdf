package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCmdToStdout(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(inPath, []byte("Hello, **World**!\n"), 0o644))

	renderOutput = ""
	out := new(bytes.Buffer)
	renderCmd.SetOut(out)
	renderCmd.SetArgs([]string{inPath})
	require.NoError(t, renderCmd.RunE(renderCmd, []string{inPath}))

	assert.Equal(t, "<p>Hello, <strong>World</strong>!</p>\n", out.String())
}

func TestRenderCmdToFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "note.md")
	outPath := filepath.Join(dir, "note.html")
	require.NoError(t, os.WriteFile(inPath, []byte("# Title\n"), 0o644))

	renderOutput = outPath
	t.Cleanup(func() { renderOutput = "" })
	require.NoError(t, renderCmd.RunE(renderCmd, []string{inPath}))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err, "render -o must have written the file")
	assert.Equal(t, "<h1>Title</h1>\n", string(got))
}

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	got, err := readSource([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}
