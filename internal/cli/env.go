package cli

import "io"

// PathRegistry is the process-wide code-path registration the `-pa`/`-pz`
// flags target. Implementations live outside this package; parsing only
// needs the two mutations.
type PathRegistry interface {
	Prepend(path string)
	Append(path string)
}

// Env carries the parse-time collaborators. Printing the version and
// halting the process on `--version` is the only side effect parsing ever
// performs; everything else flows through the returned Config.
type Env struct {
	// Out receives the version line.
	Out io.Writer
	// Exit halts the process immediately, without draining shutdown hooks.
	Exit func(code int)
	// Version reports the display string for the version flag.
	Version func() string
	// Paths registers code paths.
	Paths PathRegistry
	// Glob expands a pattern to matching paths. No matches is not an error.
	Glob func(pattern string) ([]string, error)
}
