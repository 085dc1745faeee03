package dispatch

import (
	"context"

	"github.com/vk/exrun/internal/cli"
)

// CompileRequest is the unit of work handed to the compiler collaborator:
// the deduplicated source files, the output directory, and the compiler
// options in flag order (later duplicates take effect at use time).
type CompileRequest struct {
	Files   []string
	Output  string
	Options []cli.CompilerOption
}

// Engine is the code evaluator, file loader, and compiler the dispatcher
// delegates to. Compile returns the paths it produced so verbose mode can
// report them.
type Engine interface {
	Eval(ctx context.Context, expr string) error
	LoadFile(ctx context.Context, path string) error
	Compile(ctx context.Context, req CompileRequest) ([]string, error)
}

// ParallelLoader loads a file list concurrently. The dispatcher blocks
// until the whole list has completed or failed; no other command observes
// partial progress.
type ParallelLoader interface {
	LoadFiles(ctx context.Context, paths []string) error
}

// Cluster exposes the low-level distribution primitives the Cookie command
// needs: aliveness and cookie assignment.
type Cluster interface {
	Alive() bool
	SetCookie(cookie string) error
}

// AppStarter starts a named application together with its dependency
// closure.
type AppStarter interface {
	StartApp(ctx context.Context, name string) error
}
