package runtime

import "sync"

// Version is the language version this launcher fronts.
const Version = "1.18.0"

// VersionBanner is the line the version flag prints.
func VersionBanner() string {
	return "Elixir " + Version + " (exrun)"
}

// System bundles the process-wide runtime objects and the trailing
// arguments left over after parsing, which executed code reads as its
// argv.
type System struct {
	Paths   *PathRegistry
	Cluster *Cluster
	Apps    *AppIndex

	mu   sync.Mutex
	argv []string
}

// NewSystem wires a fresh set of runtime registries. The launcher is never
// started as a live cluster node directly; the bootstrap layer would hand
// over an alive cluster instead.
func NewSystem() *System {
	paths := NewPathRegistry()
	return &System{
		Paths:   paths,
		Cluster: NewCluster(false),
		Apps:    NewAppIndex(paths),
	}
}

// SetArgv stores the trailing arguments for executed code.
func (s *System) SetArgv(argv []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.argv = append([]string(nil), argv...)
}

// Argv returns a copy of the stored trailing arguments.
func (s *System) Argv() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.argv...)
}
