package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/exrun/internal/cli"
	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/dispatch"
	"github.com/vk/exrun/internal/engine"
	"github.com/vk/exrun/internal/exit"
	"github.com/vk/exrun/internal/fsutil"
	"github.com/vk/exrun/internal/runtime"
)

// main wires the launcher: argv is parsed into a plan, the plan runs
// against the runtime collaborators, and every way out of the process goes
// through the exit coordinator.
func main() {
	logger := newLogger(os.Stderr)
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	hooks := exit.NewHooks()
	coord := exit.NewCoordinator(hooks, os.Stderr, os.Exit)
	boundary := exit.NewBoundary(coord, os.Stderr)

	sys := runtime.NewSystem()
	cfg, extra := cli.Parse(ctx, os.Args[1:], cli.Env{
		Out:     os.Stdout,
		Exit:    os.Exit,
		Version: runtime.VersionBanner,
		Paths:   sys.Paths,
		Glob:    fsutil.Glob,
	})
	sys.SetArgv(extra)

	eng := engine.New(os.Getenv("EXRUN_RUNTIME"), extra, os.Stdout, os.Stderr)
	d := dispatch.New(dispatch.Deps{
		Engine:   eng,
		Parallel: &runtime.ParallelLoader{Load: eng.LoadFile},
		Cluster:  sys.Cluster,
		Apps:     sys.Apps,
	})

	boundary.Run(ctx, cfg.Halt, entry(ctx, d, cfg, os.Stderr))

	// Reachable only with --no-halt after a successful plan: the launcher
	// keeps the process alive for whatever the plan started.
	logger.Debug("Plan finished, parking process.")
	select {}
}

// entry builds the boundary's entry action: run the plan, print every
// aggregated error one per line, and turn any error presence into a
// failure exit.
func entry(ctx context.Context, d *dispatch.Dispatcher, cfg *cli.Config, errW io.Writer) func() error {
	return func() error {
		errs, err := d.Run(ctx, cfg)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			for _, msg := range errs {
				fmt.Fprintln(errW, msg)
			}
			return exit.WithCode(1)
		}
		return nil
	}
}

// newLogger builds the process logger; the level comes from
// EXRUN_LOG_LEVEL and defaults to warn so launcher narration stays out of
// program output.
func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(os.Getenv("EXRUN_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
