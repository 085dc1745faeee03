package runtime

import "sync"

// PathRegistry is the ordered list of code paths the runtime searches for
// sources and application manifests. `-pa` targets the front, `-pz` the
// back.
type PathRegistry struct {
	mu    sync.Mutex
	paths []string
}

// NewPathRegistry creates an empty registry.
func NewPathRegistry() *PathRegistry {
	return &PathRegistry{}
}

// Prepend puts path at the front of the search order. A path already
// registered moves instead of duplicating.
func (r *PathRegistry) Prepend(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append([]string{path}, r.remove(path)...)
}

// Append puts path at the back of the search order. A path already
// registered moves instead of duplicating.
func (r *PathRegistry) Append(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.remove(path), path)
}

// List returns a copy of the current search order.
func (r *PathRegistry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// remove must be called with the lock held.
func (r *PathRegistry) remove(path string) []string {
	out := r.paths[:0]
	for _, p := range r.paths {
		if p != path {
			out = append(out, p)
		}
	}
	return out
}
