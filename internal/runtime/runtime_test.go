package runtime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathRegistry_Order(t *testing.T) {
	t.Parallel()

	r := NewPathRegistry()
	r.Append("a")
	r.Append("b")
	r.Prepend("c")

	assert.Equal(t, []string{"c", "a", "b"}, r.List())
}

func TestPathRegistry_ReregisteringMovesInsteadOfDuplicating(t *testing.T) {
	t.Parallel()

	r := NewPathRegistry()
	r.Append("a")
	r.Append("b")
	r.Prepend("b")

	assert.Equal(t, []string{"b", "a"}, r.List())

	r.Append("b")
	assert.Equal(t, []string{"a", "b"}, r.List())
}

func TestCluster_CookieRequiresAliveness(t *testing.T) {
	t.Parallel()

	dead := NewCluster(false)
	require.Error(t, dead.SetCookie("s"))

	live := NewCluster(true)
	require.NoError(t, live.SetCookie("s"))
	assert.Equal(t, "s", live.Cookie())
}

// writeManifest drops a <name>.app.yml into dir.
func writeManifest(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name+manifestSuffix)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestAppIndex_StartsDependencyClosureDepthFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "web", "name: web\napplications:\n  - db\n  - cache\n")
	writeManifest(t, dir, "db", "name: db\napplications: []\n")
	writeManifest(t, dir, "cache", "name: cache\napplications:\n  - db\n")

	paths := NewPathRegistry()
	paths.Append(dir)
	apps := NewAppIndex(paths)

	require.NoError(t, apps.StartApp(context.Background(), "web"))
	assert.True(t, apps.started["web"])
	assert.True(t, apps.started["db"])
	assert.True(t, apps.started["cache"])

	// Starting again is a no-op, not an error.
	require.NoError(t, apps.StartApp(context.Background(), "web"))
}

func TestAppIndex_MissingManifest(t *testing.T) {
	t.Parallel()

	paths := NewPathRegistry()
	paths.Append(t.TempDir())
	apps := NewAppIndex(paths)

	err := apps.StartApp(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.app.yml")
}

func TestAppIndex_DependencyCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "a", "name: a\napplications: [b]\n")
	writeManifest(t, dir, "b", "name: b\napplications: [a]\n")

	paths := NewPathRegistry()
	paths.Append(dir)
	apps := NewAppIndex(paths)

	err := apps.StartApp(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle")
}

func TestAppIndex_ManifestNameMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "web", "name: other\n")

	paths := NewPathRegistry()
	paths.Append(dir)
	apps := NewAppIndex(paths)

	err := apps.StartApp(context.Background(), "web")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names application other")
}

func TestParallelLoader_LoadsEverything(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	loaded := map[string]int{}
	loader := &ParallelLoader{
		Load: func(_ context.Context, path string) error {
			mu.Lock()
			defer mu.Unlock()
			loaded[path]++
			return nil
		},
		Limit: 2,
	}

	paths := []string{"a", "b", "c", "d"}
	require.NoError(t, loader.LoadFiles(context.Background(), paths))

	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, loaded)
}

func TestParallelLoader_PropagatesFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("load failed")
	loader := &ParallelLoader{
		Load: func(_ context.Context, path string) error {
			if path == "bad" {
				return wantErr
			}
			return nil
		},
	}

	err := loader.LoadFiles(context.Background(), []string{"good", "bad"})
	assert.ErrorIs(t, err, wantErr)
}

func TestSystem_ArgvIsCopied(t *testing.T) {
	t.Parallel()

	s := NewSystem()
	argv := []string{"one", "two"}
	s.SetArgv(argv)
	argv[0] = "mutated"

	assert.Equal(t, []string{"one", "two"}, s.Argv())
	assert.False(t, s.Cluster.Alive())
}
