// Package runtime holds the launcher's process-wide runtime state as
// explicitly owned objects: the code-path registry, the cluster handle,
// the application-manifest index, and the concurrent file loader. Nothing
// here is ambient; every consumer receives its registry by injection so
// tests get isolated instances.
package runtime
