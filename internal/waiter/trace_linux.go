//go:build linux

package waiter

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/Paintersrp/pidwait/internal/target"
)

// traceOps abstracts the ptrace surface so the attach and wait loops can be
// exercised without tracing real processes.
type traceOps interface {
	Seize(pid int) error
	Interrupt(pid int) error
	Detach(pid int) error
	Cont(pid, sig int) error
	// Wait blocks for the next state change of pid, or of any tracee
	// when pid is -1. EINTR is retried internally.
	Wait(pid int) (wpid int, status unix.WaitStatus, err error)
}

type sysTrace struct{}

func (sysTrace) Seize(pid int) error { return unix.PtraceSeize(pid) }

// Interrupt issues PTRACE_INTERRUPT, which has no wrapper in x/sys/unix.
func (sysTrace) Interrupt(pid int) error {
	_, _, errno := unix.Syscall6(unix.SYS_PTRACE, unix.PTRACE_INTERRUPT, uintptr(pid), 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func (sysTrace) Detach(pid int) error { return unix.PtraceDetach(pid) }

func (sysTrace) Cont(pid, sig int) error { return unix.PtraceCont(pid, sig) }

func (sysTrace) Wait(pid int) (int, unix.WaitStatus, error) {
	var status unix.WaitStatus
	for {
		wpid, err := unix.Wait4(pid, &status, 0, nil)
		if errors.Is(err, unix.EINTR) {
			// The Go runtime interrupts blocked syscalls with its
			// own signals.
			continue
		}
		return wpid, status, err
	}
}

// tracer waits by seizing every target and blocking on the shared kernel
// event stream.
type tracer struct {
	opts Options
	rep  *Reporter
	ops  traceOps
}

func newTracer(opts Options, rep *Reporter) traceRunner {
	return &tracer{opts: opts, rep: rep, ops: sysTrace{}}
}

// run executes the attach and wait phases on a single locked OS thread. The
// kernel reports tracee events only to the thread that attached, so neither
// loop may migrate.
func (t *tracer) run(set *target.Set) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	live, err := t.attach(set)
	if err != nil {
		return err
	}
	return t.wait(live)
}

// attach seizes every active target in order. A permission failure unwinds
// all attachments made so far and reports errTraceUnavailable; a target
// that is already gone is withdrawn, fatally unless the run is tolerant.
func (t *tracer) attach(set *target.Set) (int, error) {
	live := 0
	for i := 0; i < set.Len(); i++ {
		pid, ok := set.PID(i)
		if !ok {
			continue
		}
		if err := t.ops.Seize(pid); err != nil {
			switch {
			case errors.Is(err, unix.EPERM):
				if derr := t.detachAll(set, i); derr != nil {
					return 0, derr
				}
				return 0, errTraceUnavailable
			case errors.Is(err, unix.ESRCH):
				set.Withdraw(i)
				if !t.opts.Tolerate {
					return 0, fmt.Errorf("%d: no such process", pid)
				}
				t.rep.diagf("%d: no such process", pid)
				continue
			default:
				return 0, fmt.Errorf("%d: cannot attach to process: %w", pid, err)
			}
		}
		t.rep.waiting(pid)
		live++
	}
	return live, nil
}

// detachAll unwinds every attachment made before position end: request an
// interrupt, consume the one stop event it produces, then detach. ESRCH at
// any step means the process exited in the meantime and is tolerated.
func (t *tracer) detachAll(set *target.Set, end int) error {
	for j := 0; j < end; j++ {
		pid, ok := set.PID(j)
		if !ok {
			continue
		}
		err := t.ops.Interrupt(pid)
		if err == nil {
			_, _, err = t.ops.Wait(pid)
		}
		if err == nil {
			err = t.ops.Detach(pid)
		}
		if err != nil && !errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("%d: cannot detach from process: %w", pid, err)
		}
	}
	return nil
}

// wait consumes kernel events from any attached target until the live
// count reaches zero. Stops never decrement the count; the stopped process
// is resumed with the signal it received.
func (t *tracer) wait(live int) error {
	for live > 0 {
		pid, status, err := t.ops.Wait(-1)
		if err != nil {
			return fmt.Errorf("cannot wait: %w", err)
		}
		switch {
		case status.Exited():
			t.rep.exited(pid, status.ExitStatus())
			live--
		case status.Signaled():
			t.rep.killed(pid, status.Signal(), status.CoreDump())
			live--
		case status.Stopped():
			sig := status.StopSignal()
			t.rep.received(pid, sig)
			if err := t.ops.Cont(pid, int(sig)); err != nil {
				return fmt.Errorf("%d: cannot restart process: %w", pid, err)
			}
		default:
			return fmt.Errorf("%d: unexpected wait status %#x", pid, uint32(status))
		}
	}
	return nil
}
