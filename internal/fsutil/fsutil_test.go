package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestGlob_RecursivePattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ex"))
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.ex"))
	writeFile(t, filepath.Join(dir, "nested", "skip.txt"))

	matches, err := Glob(SourcesPattern(dir, ".ex"))
	require.NoError(t, err)

	sort.Strings(matches)
	want := []string{
		filepath.Join(dir, "a.ex"),
		filepath.Join(dir, "nested", "deep", "b.ex"),
	}
	assert.Equal(t, want, matches)
}

func TestGlob_NoMatchesIsNotAnError(t *testing.T) {
	t.Parallel()

	matches, err := Glob(filepath.Join(t.TempDir(), "none*.ex"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(t, Dedupe(nil))
}

func TestRegularFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.ex")
	writeFile(t, file)

	got := RegularFiles([]string{file, dir, filepath.Join(dir, "missing.ex")})
	assert.Equal(t, []string{file}, got)
}

func TestIsDirAndIsRegular(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.ex")
	writeFile(t, file)

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.True(t, IsRegular(file))
	assert.False(t, IsRegular(dir))
}
