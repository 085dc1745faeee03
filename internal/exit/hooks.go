package exit

import "sync"

// Hook is a registered zero-argument shutdown action. It receives the final
// exit status the process is about to terminate with.
type Hook func(status int)

// Hooks is the process-wide queue of shutdown hooks, held as an explicitly
// owned registry rather than package-level state so each launcher instance
// (and each test) gets its own.
type Hooks struct {
	mu    sync.Mutex
	queue []Hook
}

// NewHooks creates an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{}
}

// Register appends a hook to the queue. Registering from inside a running
// hook is allowed; the coordinator picks the addition up on its next pass.
func (h *Hooks) Register(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, hook)
}

// take removes and returns everything currently queued, in registration
// order. Hooks that register further hooks repopulate the queue for a
// later take.
func (h *Hooks) take() []Hook {
	h.mu.Lock()
	defer h.mu.Unlock()
	batch := h.queue
	h.queue = nil
	return batch
}
