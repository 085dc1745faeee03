// Package cli turns the launcher's raw argument vector into an ordered
// execution plan. It translates CLI flags into commands, code-path
// registrations, and compiler settings, collecting unknown-option errors
// along the way instead of aborting the scan.
//
// The grammar is order-sensitive and mode-switching (`+elixirc` and
// `+iex` hand the remaining tokens to a different rule set), and an
// unrecognized flag must be skipped rather than rejected, so parsing is a
// small hand-rolled state machine instead of a flag-package definition.
package cli
