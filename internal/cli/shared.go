package cli

import "fmt"

// sharedOption applies the option grammar common to all modes to the head
// of args. It returns the remaining tokens and whether any progress was
// made; recognizing "no progress" and recording the unknown flag is the
// caller's job.
func (p *parser) sharedOption(args []string) ([]string, bool) {
	head := args[0]
	switch head {
	case "-v", "--version":
		// The only parse-time side effect: report and halt immediately.
		fmt.Fprintln(p.env.Out, p.env.Version())
		p.env.Exit(0)
		return args[1:], true

	case "-pa", "-pz":
		if len(args) < 2 {
			return args, false
		}
		p.registerPaths(head, args[1])
		return args[2:], true

	case "--app":
		if len(args) < 2 {
			return args, false
		}
		p.push(Command{Kind: KindApp, Arg: args[1]})
		return args[2:], true

	case "--no-halt":
		p.cfg.Halt = false
		return args[1:], true

	case "-e":
		if len(args) < 2 {
			return args, false
		}
		p.push(Command{Kind: KindEval, Arg: args[1]})
		return args[2:], true

	case "-r":
		if len(args) < 2 {
			return args, false
		}
		p.push(Command{Kind: KindRequire, Arg: args[1]})
		return args[2:], true

	case "-pr":
		if len(args) < 2 {
			return args, false
		}
		p.push(Command{Kind: KindParallelRequire, Arg: args[1]})
		return args[2:], true

	case "--cookie":
		if len(args) < 2 {
			return args, false
		}
		p.push(Command{Kind: KindCookie, Arg: args[1]})
		return args[2:], true

	case "--boot", "--erl", "--sname", "--name":
		// Consumed by the VM bootstrap layer before this parser runs;
		// recognized here only so they are not flagged unknown.
		if len(args) < 2 {
			return args, false
		}
		return args[2:], true

	case "--detached", "--hidden", "--debug":
		return args[1:], true
	}

	return args, false
}

// registerPaths resolves one `-pa`/`-pz` argument. A pattern with matches
// registers every match; anything else registers the literal path.
func (p *parser) registerPaths(flag, pattern string) {
	paths, err := p.env.Glob(pattern)
	if err != nil || len(paths) == 0 {
		paths = []string{pattern}
	}
	for _, path := range paths {
		if flag == "-pa" {
			p.env.Paths.Prepend(path)
		} else {
			p.env.Paths.Append(path)
		}
	}
	p.logger.Debug("Code paths registered.", "flag", flag, "count", len(paths))
}
