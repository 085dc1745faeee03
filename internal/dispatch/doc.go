// Package dispatch executes a parsed command plan against the runtime
// collaborators. Every command runs regardless of earlier failures; each
// handler contributes at most one error string, and only an explicit
// termination request cuts the plan short. Genuinely unexpected failures
// (panics) are not collected here: they propagate to the top-level
// failure boundary.
package dispatch
