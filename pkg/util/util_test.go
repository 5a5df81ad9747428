package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	// A directory whose name matches the pattern must not be returned.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.json"), 0755))

	got := GlobFiles(dir, "*.json")
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, got)
}

func TestGlobFiles_MissingDir(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GlobFiles(filepath.Join(t.TempDir(), "missing"), "*.json"))
}

func TestGlobFiles_MetacharsInDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "ws [prod]")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "env.yml"), []byte("name: x"), 0644))

	assert.Equal(t, []string{filepath.Join(dir, "env.yml")}, GlobFiles(dir, "*.yml"))
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}

func TestStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dev", Stem("/a/b/dev.yml"))
	assert.Equal(t, "My API", Stem("My API.json"))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestSafeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Pet Store", "Pet Store"},
		{"a/b", "a_b"},
		{`c:\d`, "c__d"},
		{"  padded  ", "padded"},
		{"", "unnamed"},
		{"..", "unnamed"},
		{"what?", "what_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.input))
		})
	}
}
