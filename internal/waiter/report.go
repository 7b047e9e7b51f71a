package waiter

import (
	"fmt"
	"io"
	"syscall"

	"github.com/Paintersrp/pidwait/internal/signame"
)

// Reporter emits the per-target progress lines that make up the program's
// stdout contract, one line per event. Writes go straight to the underlying
// writer with no buffering, so every line is visible as soon as the event
// is classified.
type Reporter struct {
	out     io.Writer
	errw    io.Writer
	prog    string
	verbose bool
}

func (r *Reporter) waiting(pid int) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%d: waiting\n", pid)
}

func (r *Reporter) exited(pid, status int) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%d: exited with status %d\n", pid, status)
}

// exitedUnknown reports a disappearance observed by polling, where the exit
// status is not knowable.
func (r *Reporter) exitedUnknown(pid int) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%d: exited\n", pid)
}

func (r *Reporter) killed(pid int, sig syscall.Signal, core bool) {
	if !r.verbose {
		return
	}
	if core {
		fmt.Fprintf(r.out, "%d: killed by %s (core dumped)\n", pid, signame.Name(sig))
		return
	}
	fmt.Fprintf(r.out, "%d: killed by %s\n", pid, signame.Name(sig))
}

func (r *Reporter) received(pid int, sig syscall.Signal) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%d: received %s\n", pid, signame.Name(sig))
}

// diagf writes a program-prefixed diagnostic to stderr. Unlike progress
// lines, diagnostics are not gated on verbose mode.
func (r *Reporter) diagf(format string, args ...any) {
	fmt.Fprintf(r.errw, "%s: %s\n", r.prog, fmt.Sprintf(format, args...))
}

func (r *Reporter) traceUnavailable() {
	if !r.verbose {
		return
	}
	r.diagf("unable to trace processes")
}
