package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vk/exrun/internal/ctxlog"
)

// manifestSuffix is the file name pattern of application manifests looked
// up on the code path: <name>.app.yml.
const manifestSuffix = ".app.yml"

// appManifest describes one application: its name and the applications it
// depends on.
type appManifest struct {
	Name         string   `yaml:"name"`
	Applications []string `yaml:"applications"`
}

// AppIndex starts applications by resolving their manifests on the code
// path and bringing up the dependency closure first. Starting is
// idempotent per process.
type AppIndex struct {
	paths *PathRegistry

	mu      sync.Mutex
	started map[string]bool
}

// NewAppIndex builds an index over the given code-path registry.
func NewAppIndex(paths *PathRegistry) *AppIndex {
	return &AppIndex{paths: paths, started: make(map[string]bool)}
}

// StartApp starts name and every application in its dependency closure,
// depth-first. Already-started applications are skipped; a dependency
// cycle is an error.
func (a *AppIndex) StartApp(ctx context.Context, name string) error {
	return a.start(ctx, name, map[string]bool{})
}

func (a *AppIndex) start(ctx context.Context, name string, visiting map[string]bool) error {
	a.mu.Lock()
	started := a.started[name]
	a.mu.Unlock()
	if started {
		return nil
	}
	if visiting[name] {
		return fmt.Errorf("dependency cycle through %s", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	manifest, err := a.lookup(name)
	if err != nil {
		return err
	}
	for _, dep := range manifest.Applications {
		if err := a.start(ctx, dep, visiting); err != nil {
			return fmt.Errorf("could not start dependency %s: %w", dep, err)
		}
	}

	a.mu.Lock()
	a.started[name] = true
	a.mu.Unlock()
	ctxlog.FromContext(ctx).Debug("Application started.", "app", name)
	return nil
}

// lookup resolves and decodes the first <name>.app.yml found on the code
// path, front to back.
func (a *AppIndex) lookup(name string) (*appManifest, error) {
	file := name + manifestSuffix
	for _, dir := range a.paths.List() {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var m appManifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
		}
		if m.Name != "" && m.Name != name {
			return nil, fmt.Errorf("manifest %s names application %s", path, m.Name)
		}
		return &m, nil
	}
	return nil, fmt.Errorf("no %s on the code path", file)
}
