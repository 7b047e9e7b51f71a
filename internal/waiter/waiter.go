package waiter

import (
	"errors"
	"io"
	"time"

	"github.com/Paintersrp/pidwait/internal/target"
)

// Options configure a single wait run.
type Options struct {
	// Tolerate keeps the run going past targets that are invalid or
	// already gone instead of aborting.
	Tolerate bool

	// Interval is the pause between liveness sweeps when the polling
	// strategy is in effect. Ignored while tracing.
	Interval time.Duration

	// Verbose emits one progress line per state transition.
	Verbose bool
}

// errTraceUnavailable reports that attaching is not permitted for this run
// and the polling strategy must take over. It never escapes Run.
var errTraceUnavailable = errors.New("tracing unavailable")

// traceRunner is the two-phase tracing strategy. The platform-specific
// tracer satisfies it; on platforms without ptrace a stub reports
// errTraceUnavailable unconditionally.
type traceRunner interface {
	run(set *target.Set) error
}

// Waiter blocks until every active target in a set has terminated,
// preferring the tracing strategy and falling back to polling when
// attaching is not permitted.
type Waiter struct {
	opts  Options
	rep   *Reporter
	trace traceRunner
}

// New constructs a Waiter. prog is the program name used to prefix
// diagnostics on stderr; progress lines go to stdout.
func New(opts Options, prog string, stdout, stderr io.Writer) *Waiter {
	rep := &Reporter{out: stdout, errw: stderr, prog: prog, verbose: opts.Verbose}
	return &Waiter{opts: opts, rep: rep, trace: newTracer(opts, rep)}
}

// Run waits until every active target in set has exited. It returns nil
// once all targets are accounted for; any error it returns is fatal to the
// run and carries the offending PID where one applies.
func (w *Waiter) Run(set *target.Set) error {
	err := w.trace.run(set)
	if !errors.Is(err, errTraceUnavailable) {
		return err
	}

	w.rep.traceUnavailable()

	p := newPoller(w.opts, w.rep)
	live, err := p.attach(set)
	if err != nil {
		return err
	}
	p.wait(live, set)
	return nil
}
