package cli

// CommandKind discriminates the variants of a parsed command.
type CommandKind int

const (
	// KindCookie sets the cluster cookie.
	KindCookie CommandKind = iota
	// KindEval evaluates an expression in an empty environment.
	KindEval
	// KindApp starts a named application and its dependency closure.
	KindApp
	// KindScript resolves an executable on the search path and runs it.
	KindScript
	// KindFile loads and executes a single source file.
	KindFile
	// KindRequire loads every file matching a glob, sequentially.
	KindRequire
	// KindParallelRequire loads every file matching a glob concurrently.
	KindParallelRequire
	// KindCompile compiles the union of a pattern list to the output dir.
	KindCompile
)

// String returns the flag-style name of the kind, used in log lines.
func (k CommandKind) String() string {
	switch k {
	case KindCookie:
		return "cookie"
	case KindEval:
		return "eval"
	case KindApp:
		return "app"
	case KindScript:
		return "script"
	case KindFile:
		return "file"
	case KindRequire:
		return "require"
	case KindParallelRequire:
		return "parallel-require"
	case KindCompile:
		return "compile"
	default:
		return "unknown"
	}
}

// Command is one tagged entry of the execution plan. Arg carries the cookie
// value, expression, application name, path, or glob depending on Kind;
// Patterns is populated for KindCompile only.
type Command struct {
	Kind     CommandKind
	Arg      string
	Patterns []string
}

// CompilerOption is one key/value compiler setting. Order is preserved and
// later duplicates take effect at use time.
type CompilerOption struct {
	Key   string
	Value bool
}

// Config is the cumulative result of a parse: the execution plan plus
// everything the dispatcher needs to run it. It is created once per
// invocation and consumed once.
type Config struct {
	// Output is the compiler output directory.
	Output string
	// Commands is the execution plan in left-to-right flag order.
	Commands []Command
	// Compile accumulates compiler-mode source patterns until they are
	// folded into a single KindCompile command.
	Compile []string
	// Halt reports whether the process should terminate once the plan
	// has run.
	Halt bool
	// CompilerOpts are the compiler settings, in flag order.
	CompilerOpts []CompilerOption
	// Errors are the parse-time unknown-option errors, surfaced ahead of
	// dispatch-time errors.
	Errors []string
	// VerboseCompile enables per-file compile logging.
	VerboseCompile bool
}

// NewConfig returns a Config with the launcher defaults.
func NewConfig() *Config {
	return &Config{Output: ".", Halt: true}
}

// HasEval reports whether the plan already contains an Eval command. The
// first bare token after one is returned to the caller instead of becoming
// a File command.
func (c *Config) HasEval() bool {
	for _, cmd := range c.Commands {
		if cmd.Kind == KindEval {
			return true
		}
	}
	return false
}
