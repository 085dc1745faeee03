package exit

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/stacktrace"
)

// Coordinator drains the shutdown-hook queue and terminates the process.
type Coordinator struct {
	hooks *Hooks
	errW  io.Writer
	halt  func(code int)
}

// NewCoordinator wires a coordinator to a hook registry, an error stream
// for hook failure reports, and the low-level halt primitive.
func NewCoordinator(hooks *Hooks, errW io.Writer, halt func(code int)) *Coordinator {
	return &Coordinator{hooks: hooks, errW: errW, halt: halt}
}

// Shutdown runs every queued hook with the final status, repeating the full
// drain until one pass registers nothing new, then terminates the process.
// A failing hook is reported and never aborts the drain or changes the
// status.
func (c *Coordinator) Shutdown(ctx context.Context, status int) {
	logger := ctxlog.FromContext(ctx)

	for pass := 1; ; pass++ {
		batch := c.hooks.take()
		if len(batch) == 0 {
			break
		}
		logger.Debug("Draining shutdown hooks.", "pass", pass, "count", len(batch))
		for _, hook := range batch {
			c.runHook(hook, status)
		}
	}

	logger.Debug("Shutdown hooks drained, halting.", "status", status)
	c.halt(status)
}

// runHook executes one hook, converting a panic into a pruned failure
// report on the error stream.
func (c *Coordinator) runHook(hook Hook, status int) {
	defer func() {
		if r := recover(); r != nil {
			frames := stacktrace.Prune(stacktrace.Capture(2))
			fmt.Fprintf(c.errW, "** (shutdown hook failed) %v\n", r)
			for _, f := range frames {
				fmt.Fprintf(c.errW, "    %s\n", f)
			}
		}
	}()
	hook(status)
}
