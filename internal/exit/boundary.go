package exit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/stacktrace"
)

// Boundary is the top-level failure boundary wrapping the launcher's entry
// action. It is the only place that turns results, termination requests,
// and uncaught panics into actual process termination.
type Boundary struct {
	coord *Coordinator
	errW  io.Writer
}

// NewBoundary wires a boundary to the coordinator and an error stream for
// failure reports.
func NewBoundary(coord *Coordinator, errW io.Writer) *Boundary {
	return &Boundary{coord: coord, errW: errW}
}

// Run executes fn and settles the process outcome:
//
//   - nil return: terminate with status 0, unless halting is disabled, in
//     which case Run simply returns and the caller keeps the process alive.
//   - *Request: terminate with the requested code.
//   - any other error: report it and terminate with status 1.
//   - panic: report the pruned trace and terminate with status 1.
//
// Every termination path drains the shutdown hooks first.
func (b *Boundary) Run(ctx context.Context, halt bool, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			frames := stacktrace.Prune(stacktrace.Capture(2))
			fmt.Fprintf(b.errW, "** (uncaught failure) %v\n", r)
			for _, f := range frames {
				fmt.Fprintf(b.errW, "    %s\n", f)
			}
			b.coord.Shutdown(ctx, 1)
		}
	}()

	err := fn()
	if err == nil {
		if halt {
			b.coord.Shutdown(ctx, 0)
		} else {
			ctxlog.FromContext(ctx).Debug("Halt disabled, leaving process running.")
		}
		return
	}

	var req *Request
	if errors.As(err, &req) {
		b.coord.Shutdown(ctx, req.Code)
		return
	}

	fmt.Fprintln(b.errW, err)
	b.coord.Shutdown(ctx, 1)
}
