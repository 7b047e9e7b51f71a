package waiter

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Paintersrp/pidwait/internal/target"
)

// poller is the fallback strategy: nothing is attached, each target is
// probed for existence between timed sleeps.
type poller struct {
	opts  Options
	rep   *Reporter
	probe func(pid int) bool
	sleep func(d time.Duration)
}

func newPoller(opts Options, rep *Reporter) *poller {
	return &poller{opts: opts, rep: rep, probe: probeProcess, sleep: time.Sleep}
}

// probeProcess reports whether pid exists. A live process owned by another
// user answers EPERM, which still counts as alive.
func probeProcess(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// attach counts the targets that still exist, withdrawing the ones that do
// not. The returned live count drives wait.
func (p *poller) attach(set *target.Set) (int, error) {
	live := 0
	for i := 0; i < set.Len(); i++ {
		pid, ok := set.PID(i)
		if !ok {
			continue
		}
		if !p.probe(pid) {
			set.Withdraw(i)
			if !p.opts.Tolerate {
				return 0, fmt.Errorf("%d: no such process", pid)
			}
			p.rep.diagf("%d: no such process", pid)
			continue
		}
		p.rep.waiting(pid)
		live++
	}
	return live, nil
}

// wait sweeps the remaining targets at the configured interval until none
// are left. Disappearances are reported without exit detail.
func (p *poller) wait(live int, set *target.Set) {
	for live > 0 {
		p.sleep(p.opts.Interval)

		for i := 0; i < set.Len(); i++ {
			pid, ok := set.PID(i)
			if !ok {
				continue
			}
			if p.probe(pid) {
				continue
			}
			set.Withdraw(i)
			p.rep.exitedUnknown(pid)
			live--
		}
	}
}
