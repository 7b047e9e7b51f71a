// Package waiter implements the engine that blocks until every process in a
// target set has terminated.
//
// Two mutually exclusive strategies exist. On Linux the waiter seizes each
// target with ptrace(2) and sleeps on the kernel's shared event stream,
// which reports exits, signal deaths and stops the moment they happen. When
// attaching is denied, or on platforms without a tracing facility, it falls
// back to probing every target for existence at a fixed interval; under
// polling the only observable fact is that a process has disappeared, so no
// exit detail is reported.
package waiter
