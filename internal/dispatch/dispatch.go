package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/vk/exrun/internal/cli"
	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/exit"
	"github.com/vk/exrun/internal/fsutil"
)

// batchExts are the script extensions stripped on batch-style platforms.
var batchExts = []string{".bat", ".cmd"}

// Deps bundles the dispatcher's collaborators. Zero fields for LookPath,
// Glob, Platform, and Out are filled with production defaults by New.
type Deps struct {
	Engine   Engine
	Parallel ParallelLoader
	Cluster  Cluster
	Apps     AppStarter

	// LookPath resolves an executable on the search path.
	LookPath func(file string) (string, error)
	// Glob expands a pattern; no matches is an empty slice, not an error.
	Glob func(pattern string) ([]string, error)
	// Platform decides batch-script handling for the Script command.
	Platform string
	// Out receives the verbose "Compiled FILE" lines.
	Out io.Writer
}

// Dispatcher executes every command of a Config in plan order.
type Dispatcher struct {
	deps Deps
}

// New builds a dispatcher, defaulting the ambient collaborators.
func New(deps Deps) *Dispatcher {
	if deps.LookPath == nil {
		deps.LookPath = exec.LookPath
	}
	if deps.Glob == nil {
		deps.Glob = fsutil.Glob
	}
	if deps.Platform == "" {
		deps.Platform = goruntime.GOOS
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	return &Dispatcher{deps: deps}
}

// Run executes the plan and returns the parse-time errors followed by the
// dispatch-time errors, in execution order. Execution never stops early on
// a handler error; a termination request from inside a handler is returned
// as the error value and skips the rest of the plan.
func (d *Dispatcher) Run(ctx context.Context, cfg *cli.Config) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	errs := append([]string(nil), cfg.Errors...)

	for _, cmd := range cfg.Commands {
		err := d.invoke(ctx, cfg, cmd)
		if err == nil {
			continue
		}
		var req *exit.Request
		if errors.As(err, &req) {
			logger.Debug("Termination requested by command.", "kind", cmd.Kind.String(), "code", req.Code)
			return errs, err
		}
		logger.Debug("Command failed.", "kind", cmd.Kind.String(), "error", err)
		errs = append(errs, err.Error())
	}
	return errs, nil
}

// invoke is the generic invocation wrapper every command runs through. The
// stack-trace pruner truncates failure traces at this frame, so it must
// stay the single call site for all handlers.
func (d *Dispatcher) invoke(ctx context.Context, cfg *cli.Config, cmd cli.Command) error {
	ctxlog.FromContext(ctx).Debug("Running command.", "kind", cmd.Kind.String())
	switch cmd.Kind {
	case cli.KindCookie:
		return d.runCookie(cmd.Arg)
	case cli.KindEval:
		return d.deps.Engine.Eval(ctx, cmd.Arg)
	case cli.KindApp:
		return d.runApp(ctx, cmd.Arg)
	case cli.KindScript:
		return d.runScript(ctx, cmd.Arg)
	case cli.KindFile:
		return d.runFile(ctx, cmd.Arg)
	case cli.KindRequire:
		return d.runRequire(ctx, "-r", cmd.Arg, d.loadSequential)
	case cli.KindParallelRequire:
		return d.runRequire(ctx, "-pr", cmd.Arg, d.deps.Parallel.LoadFiles)
	case cli.KindCompile:
		return d.runCompile(ctx, cfg, cmd.Patterns)
	default:
		return fmt.Errorf("unreachable command kind %d", cmd.Kind)
	}
}

func (d *Dispatcher) runCookie(cookie string) error {
	if !d.deps.Cluster.Alive() {
		return errors.New("cannot set cookie if the node is not alive")
	}
	return d.deps.Cluster.SetCookie(cookie)
}

func (d *Dispatcher) runApp(ctx context.Context, name string) error {
	if err := d.deps.Apps.StartApp(ctx, name); err != nil {
		return fmt.Errorf("could not start application %s: %w", name, err)
	}
	return nil
}

// runScript resolves the target on the search path. Batch-style platforms
// dispatch through a stub with a script extension; the loadable file is the
// extension-less one next to it.
func (d *Dispatcher) runScript(ctx context.Context, name string) error {
	path, err := d.deps.LookPath(name)
	if err != nil {
		return fmt.Errorf("-S : Could not find executable %s", name)
	}
	if d.deps.Platform == "windows" {
		for _, ext := range batchExts {
			if strings.EqualFold(filepath.Ext(path), ext) {
				path = strings.TrimSuffix(path, filepath.Ext(path))
				if !fsutil.IsRegular(path) {
					return fmt.Errorf("-S : Could not find executable %s", name)
				}
				break
			}
		}
	}
	return d.deps.Engine.LoadFile(ctx, path)
}

func (d *Dispatcher) runFile(ctx context.Context, path string) error {
	if !fsutil.IsRegular(path) {
		return fmt.Errorf("No file named %s", path)
	}
	return d.deps.Engine.LoadFile(ctx, path)
}

// runRequire expands one require glob and hands the surviving files to the
// given loader. Both require variants share the filtering; only the flag
// name in the error and the loader differ.
func (d *Dispatcher) runRequire(ctx context.Context, flag, pattern string, load func(context.Context, []string) error) error {
	matches, err := d.deps.Glob(pattern)
	if err != nil {
		matches = nil
	}
	files := fsutil.RegularFiles(fsutil.Dedupe(matches))
	if len(files) == 0 {
		return fmt.Errorf("%s : No files matched pattern %s", flag, pattern)
	}
	return load(ctx, files)
}

func (d *Dispatcher) loadSequential(ctx context.Context, files []string) error {
	for _, f := range files {
		if err := d.deps.Engine.LoadFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// runCompile compiles the deduplicated union of all pattern matches. One
// empty pattern aborts the whole command with a single error naming every
// empty pattern; matched patterns are deliberately ignored in that case.
func (d *Dispatcher) runCompile(ctx context.Context, cfg *cli.Config, patterns []string) error {
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return fmt.Errorf("could not create output directory %s: %v", cfg.Output, err)
	}

	var union, unmatched []string
	for _, pattern := range patterns {
		matches, err := d.deps.Glob(pattern)
		if err != nil || len(matches) == 0 {
			unmatched = append(unmatched, pattern)
			continue
		}
		union = append(union, matches...)
	}
	if len(unmatched) > 0 {
		return fmt.Errorf("No files matched provided patterns %s", strings.Join(unmatched, ", "))
	}

	compiled, err := d.deps.Engine.Compile(ctx, CompileRequest{
		Files:   fsutil.Dedupe(union),
		Output:  cfg.Output,
		Options: cfg.CompilerOpts,
	})
	if err != nil {
		return err
	}
	if cfg.VerboseCompile {
		for _, f := range compiled {
			fmt.Fprintf(d.deps.Out, "Compiled %s\n", f)
		}
	}
	return nil
}
