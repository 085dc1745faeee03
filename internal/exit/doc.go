// Package exit owns the process termination lifecycle: the shutdown-hook
// registry, the coordinator that drains it to a fixed point before halting,
// the failure boundary that wraps the launcher's entry action, and the
// Request error value through which inner code asks for termination
// without ever halting the process itself.
package exit
