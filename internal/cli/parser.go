package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vk/exrun/internal/ctxlog"
	"github.com/vk/exrun/internal/fsutil"
)

// sourceExt is the extension compiler-mode directory arguments expand over.
const sourceExt = ".ex"

// mode selects which rule set is active for the remaining tokens. All three
// modes share the option fallback, `--` handling, and most of the scan
// loop; only the per-mode cases below differ.
type mode int

const (
	modeTop mode = iota
	modeCompiler
	modeInteractive
)

type parser struct {
	cfg    *Config
	env    Env
	logger *slog.Logger
}

// Parse scans the argument vector and returns the resulting Config together
// with the trailing arguments left unconsumed.
func Parse(ctx context.Context, args []string, env Env) (*Config, []string) {
	p := &parser{cfg: NewConfig(), env: env, logger: ctxlog.FromContext(ctx)}
	rest := p.parse(modeTop, args)
	p.logger.Debug("Argument parsing finished.",
		"commands", len(p.cfg.Commands),
		"trailing", len(rest),
		"errors", len(p.cfg.Errors),
	)
	return p.cfg, rest
}

// parse consumes tokens under the given mode until the vector is exhausted,
// truncated by `--`, or handed back as trailing arguments.
func (p *parser) parse(m mode, args []string) []string {
	for len(args) > 0 {
		head := args[0]

		// `--` truncates parsing in every mode. Compiler mode still has
		// to close out its accumulated pattern list: those tokens were
		// validly consumed and must not vanish.
		if head == "--" {
			if m == modeCompiler {
				p.foldCompile()
			}
			return args[1:]
		}

		switch m {
		case modeTop:
			switch {
			case head == "+elixirc":
				return p.parse(modeCompiler, args[1:])
			case head == "+iex":
				return p.parse(modeInteractive, args[1:])
			case head == "-S" && len(args) > 1:
				p.push(Command{Kind: KindScript, Arg: args[1]})
				return args[2:]
			case flagShaped(head):
				args = p.fallback(args)
			case p.cfg.HasEval():
				// The expression is the program; everything from the
				// first bare token on belongs to it as arguments.
				return args
			default:
				p.push(Command{Kind: KindFile, Arg: head})
				args = args[1:]
			}

		case modeCompiler:
			switch {
			case head == "-o" && len(args) > 1:
				p.cfg.Output = args[1]
				args = args[2:]
			case head == "--no-docs":
				p.pushOpt("docs", false)
				args = args[1:]
			case head == "--no-debug-info":
				p.pushOpt("debug_info", false)
				args = args[1:]
			case head == "--ignore-module-conflict":
				p.pushOpt("ignore_module_conflict", true)
				args = args[1:]
			case head == "--warnings-as-errors":
				p.pushOpt("warnings_as_errors", true)
				args = args[1:]
			case head == "--verbose":
				p.cfg.VerboseCompile = true
				args = args[1:]
			case flagShaped(head):
				args = p.fallback(args)
			default:
				p.cfg.Compile = append(p.cfg.Compile, p.compilePattern(head))
				args = args[1:]
			}

		case modeInteractive:
			switch {
			case (head == "--dot-iex" || head == "--remsh") && len(args) > 1:
				// Consumed so they are not flagged unknown; the
				// interactive shell reads them on its own.
				args = args[2:]
			case head == "-S" && len(args) > 1:
				p.push(Command{Kind: KindScript, Arg: args[1]})
				return args[2:]
			case flagShaped(head):
				args = p.fallback(args)
			default:
				p.push(Command{Kind: KindFile, Arg: head})
				args = args[1:]
			}
		}
	}

	if m == modeCompiler {
		p.foldCompile()
	}
	return nil
}

// fallback applies the shared-option grammar to a flag-shaped token the
// active mode did not recognize. No progress means the flag is unknown: it
// is dropped, recorded, and scanning resumes at the next token.
func (p *parser) fallback(args []string) []string {
	if rest, ok := p.sharedOption(args); ok {
		return rest
	}
	p.logger.Debug("Unknown option skipped.", "flag", args[0])
	p.cfg.Errors = append(p.cfg.Errors, args[0]+" : Unknown option")
	return args[1:]
}

// compilePattern turns one compiler-mode source argument into a glob
// pattern. Directories eagerly expand to a recursive source pattern; plain
// tokens stay literal and are only checked when the Compile command runs.
func (p *parser) compilePattern(token string) string {
	if fsutil.IsDir(token) {
		return fsutil.SourcesPattern(token, sourceExt)
	}
	return token
}

// foldCompile closes compiler mode by folding the accumulated pattern list
// into a single Compile command at the current plan position.
func (p *parser) foldCompile() {
	p.push(Command{Kind: KindCompile, Patterns: p.cfg.Compile})
}

func (p *parser) push(cmd Command) {
	p.cfg.Commands = append(p.cfg.Commands, cmd)
}

func (p *parser) pushOpt(key string, value bool) {
	p.cfg.CompilerOpts = append(p.cfg.CompilerOpts, CompilerOption{Key: key, Value: value})
}

// flagShaped reports whether a token reads as an option rather than a
// positional value.
func flagShaped(token string) bool {
	return strings.HasPrefix(token, "-")
}
