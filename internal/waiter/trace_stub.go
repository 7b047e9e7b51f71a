//go:build !linux

package waiter

import "github.com/Paintersrp/pidwait/internal/target"

// tracerStub stands in on platforms without a usable tracing facility. Its
// attach phase always reports unavailable, sending the dispatcher straight
// to the polling strategy.
type tracerStub struct{}

func newTracer(opts Options, rep *Reporter) traceRunner {
	return tracerStub{}
}

func (tracerStub) run(set *target.Set) error {
	return errTraceUnavailable
}
