// Package stacktrace captures and prunes call stacks for failure reports.
//
// A raw trace taken at a recovered panic is dominated by launcher
// machinery: evaluation plumbing above the fault and the command
// dispatcher's invocation wrapper below it. Pruning strips both ends so
// the report starts at the code that actually failed, without touching
// any frame in between.
package stacktrace

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one entry of a trace, most recent call first.
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame the way failure reports print it.
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Function)
}

// internalPrefixes identifies machinery whose frames are dropped while they
// lead the trace: the Go runtime's panic plumbing and the packages that
// evaluate user code on the launcher's behalf.
var internalPrefixes = []string{
	"runtime.",
	"github.com/vk/exrun/internal/engine.",
	"github.com/vk/exrun/internal/runtime.",
	"github.com/vk/exrun/internal/exit.",
}

// wrapperFunction is the dispatcher's generic invocation wrapper. Everything
// at and below it belongs to the launcher, not to the failing command.
const wrapperFunction = "github.com/vk/exrun/internal/dispatch.(*Dispatcher).invoke"

// Capture records the current goroutine's stack, most recent call first,
// skipping the given number of frames above the caller of Capture.
func Capture(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])

	var out []Frame
	for {
		fr, more := frames.Next()
		out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		if !more {
			break
		}
	}
	return out
}

// Prune drops every leading internal-machinery frame, then truncates the
// trace at the dispatcher's invocation wrapper. Remaining frames are
// preserved verbatim, in order.
func Prune(frames []Frame) []Frame {
	i := 0
	for i < len(frames) && isInternal(frames[i].Function) {
		i++
	}
	frames = frames[i:]

	for j, f := range frames {
		if f.Function == wrapperFunction {
			return frames[:j]
		}
	}
	return frames
}

func isInternal(function string) bool {
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}
