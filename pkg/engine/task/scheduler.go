package task

import "time"

// Scheduler resumes every running task once per Tick. It is not safe for
// concurrent use; the host drives it from its single update goroutine.
type Scheduler struct {
	running []Task
	pending []Task
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Spawn queues t. Tasks spawned during a tick first run on the next tick.
func (s *Scheduler) Spawn(t Task) {
	if t == nil {
		return
	}
	s.pending = append(s.pending, t)
}

// Tick resumes all running tasks with the elapsed frame time and drops the
// ones that finished.
func (s *Scheduler) Tick(dt time.Duration) {
	s.running = append(s.running, s.pending...)
	s.pending = nil

	kept := s.running[:0]
	for _, t := range s.running {
		if t.Resume(dt) == Suspended {
			kept = append(kept, t)
		}
	}
	// Clear the tail so finished tasks can be collected.
	for i := len(kept); i < len(s.running); i++ {
		s.running[i] = nil
	}
	s.running = kept
}

// Abort drops every task, running and pending, giving each a chance to
// release what it holds.
func (s *Scheduler) Abort() {
	all := append(s.running, s.pending...)
	s.running = nil
	s.pending = nil
	for _, t := range all {
		if a, ok := t.(Aborter); ok {
			a.Abort()
		}
	}
}

// Len returns the number of running and pending tasks.
func (s *Scheduler) Len() int {
	return len(s.running) + len(s.pending)
}

// Idle reports whether no task is running or pending.
func (s *Scheduler) Idle() bool {
	return s.Len() == 0
}
