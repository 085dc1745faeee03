// Package engine provides the default evaluator/loader/compiler
// collaborator: it delegates the actual work to the companion runtime
// executable and reports its outcome back to the dispatcher.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/dispatch"
	"github.com/vk/exrun/internal/exit"
)

// DefaultCommand is the companion runtime executable, overridable through
// the EXRUN_RUNTIME environment variable.
const DefaultCommand = "exrund"

// Exec runs code by spawning the companion runtime process per command.
type Exec struct {
	command string
	argv    []string
	stdout  io.Writer
	stderr  io.Writer
}

// New builds an engine around the given companion command. argv is
// forwarded to executed files and scripts as their program arguments.
func New(command string, argv []string, stdout, stderr io.Writer) *Exec {
	if command == "" {
		command = DefaultCommand
	}
	return &Exec{command: command, argv: argv, stdout: stdout, stderr: stderr}
}

// Eval evaluates an expression in an empty environment.
func (e *Exec) Eval(ctx context.Context, expr string) error {
	return e.run(ctx, "eval", expr)
}

// LoadFile loads and executes one source file, passing the stored argv
// through.
func (e *Exec) LoadFile(ctx context.Context, path string) error {
	return e.run(ctx, append([]string{"load", path}, e.argv...)...)
}

// Compile compiles the request's files into its output directory. The
// companion receives the options as ordered key=value pairs; a later
// duplicate wins there.
func (e *Exec) Compile(ctx context.Context, req dispatch.CompileRequest) ([]string, error) {
	args := []string{"compile", "-o", req.Output}
	for _, opt := range req.Options {
		args = append(args, "--opt", fmt.Sprintf("%s=%t", opt.Key, opt.Value))
	}
	args = append(args, req.Files...)
	if err := e.run(ctx, args...); err != nil {
		return nil, err
	}
	return req.Files, nil
}

// run spawns one companion invocation. The companion signals an explicit
// halt through its exit status; a non-zero status therefore surfaces as a
// termination request carrying that code, after the companion has already
// written its diagnostics to stderr.
func (e *Exec) run(ctx context.Context, args ...string) error {
	ctxlog.FromContext(ctx).Debug("Spawning runtime.", "command", e.command, "args", args)
	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exit.WithCode(exitErr.ExitCode())
	}
	return fmt.Errorf("could not run %s: %w", e.command, err)
}
