// Package signame resolves signal numbers to the conventional names used in
// progress output.
package signame

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// Name returns the symbolic name of sig, such as "SIGTERM". Signals the
// platform has no name for, such as real-time signals, render as
// "signal <n>".
func Name(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return fmt.Sprintf("signal %d", int(sig))
}
