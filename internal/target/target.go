// Package target holds the ordered set of process identifiers a run waits
// on. Entries keep their original position for the lifetime of the run;
// targets that turn out to be invalid or gone are withdrawn in place rather
// than removed.
package target

import "fmt"

type entry struct {
	pid       int
	withdrawn bool
}

// Set is a fixed-size, position-stable collection of targets. Duplicate
// identifiers are independent entries.
type Set struct {
	entries []entry
}

// New builds a Set from parsed identifiers. self is the watcher's own PID;
// a matching entry is refused because a process cannot trace itself. Under
// tolerate the entry is withdrawn instead of failing construction, and its
// PID is reported in the second return value so the caller can surface a
// diagnostic.
func New(pids []int, self int, tolerate bool) (*Set, []int, error) {
	s := &Set{entries: make([]entry, len(pids))}
	var refused []int
	for i, pid := range pids {
		if pid == self {
			if !tolerate {
				return nil, nil, fmt.Errorf("%d: refusing to trace self", pid)
			}
			refused = append(refused, pid)
			s.entries[i] = entry{pid: pid, withdrawn: true}
			continue
		}
		s.entries[i] = entry{pid: pid}
	}
	return s, refused, nil
}

// Len returns the number of entries, withdrawn or not.
func (s *Set) Len() int {
	return len(s.entries)
}

// PID returns the identifier at position i and whether the entry is still
// active.
func (s *Set) PID(i int) (int, bool) {
	e := s.entries[i]
	return e.pid, !e.withdrawn
}

// Withdraw marks the entry at position i as no longer being waited on.
func (s *Set) Withdraw(i int) {
	s.entries[i].withdrawn = true
}

// Active returns the number of non-withdrawn entries.
func (s *Set) Active() int {
	n := 0
	for _, e := range s.entries {
		if !e.withdrawn {
			n++
		}
	}
	return n
}
