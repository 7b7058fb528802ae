// Package task provides suspendable tasks driven by a per-frame scheduler tick.
//
// Every long-running game sequence (room transitions, cinematics, dialogue)
// is a Task. The scheduler resumes each running task once per tick with the
// elapsed frame time; a task either suspends until the next tick or reports
// that it is done. Composition is explicit: Sequence runs tasks one after
// another, Lazy builds a continuation when it is reached.
package task

import "time"

// Status is the result of resuming a task.
type Status int

const (
	// Suspended means the task yielded and wants to be resumed next tick.
	Suspended Status = iota
	// Done means the task has finished and must not be resumed again.
	Done
)

// Task is a cooperative, resumable unit of work.
type Task interface {
	Resume(dt time.Duration) Status
}

// Aborter is implemented by tasks that hold resources which must be released
// when the scheduler drops them before they finish.
type Aborter interface {
	Abort()
}

// Func adapts a plain function to the Task interface.
type Func func(dt time.Duration) Status

// Resume calls f.
func (f Func) Resume(dt time.Duration) Status {
	return f(dt)
}

// Do returns a task that runs fn once and finishes in the same resume.
func Do(fn func()) Task {
	return Func(func(time.Duration) Status {
		fn()
		return Done
	})
}

// Nop returns a task that finishes immediately.
func Nop() Task {
	return Func(func(time.Duration) Status { return Done })
}

// wait suspends until the accumulated frame time reaches d.
type wait struct {
	d       time.Duration
	elapsed time.Duration
}

// Wait returns a task that suspends for at least d of game time.
// The first resume does not count towards d, so a Wait started this tick
// always yields at least once.
func Wait(d time.Duration) Task {
	return &wait{d: d, elapsed: -1}
}

func (w *wait) Resume(dt time.Duration) Status {
	if w.elapsed < 0 {
		w.elapsed = 0
		if w.d <= 0 {
			return Done
		}
		return Suspended
	}
	w.elapsed += dt
	if w.elapsed >= w.d {
		return Done
	}
	return Suspended
}

// WaitUntil returns a task that suspends until cond reports true.
// cond is evaluated on every resume, including the first.
func WaitUntil(cond func() bool) Task {
	return Func(func(time.Duration) Status {
		if cond() {
			return Done
		}
		return Suspended
	})
}

// sequence runs its children in order. A child that finishes hands over to
// the next child within the same resume so zero-length steps cost no frames.
type sequence struct {
	tasks []Task
	index int
}

// Sequence returns a task that runs tasks one after another.
// Nil entries are skipped.
func Sequence(tasks ...Task) Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			filtered = append(filtered, t)
		}
	}
	return &sequence{tasks: filtered}
}

func (s *sequence) Resume(dt time.Duration) Status {
	for s.index < len(s.tasks) {
		if s.tasks[s.index].Resume(dt) == Suspended {
			return Suspended
		}
		s.index++
		// Only the first child in a resume sees the frame time.
		dt = 0
	}
	return Done
}

// Abort forwards to the running child.
func (s *sequence) Abort() {
	if s.index < len(s.tasks) {
		if a, ok := s.tasks[s.index].(Aborter); ok {
			a.Abort()
		}
	}
}

// all runs its children side by side.
type all struct {
	tasks []Task
	done  []bool
}

// All returns a task that resumes every child each tick and finishes when
// the last of them does.
func All(tasks ...Task) Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			filtered = append(filtered, t)
		}
	}
	return &all{tasks: filtered, done: make([]bool, len(filtered))}
}

func (a *all) Resume(dt time.Duration) Status {
	status := Done
	for i, t := range a.tasks {
		if a.done[i] {
			continue
		}
		if t.Resume(dt) == Suspended {
			status = Suspended
			continue
		}
		a.done[i] = true
	}
	return status
}

func (a *all) Abort() {
	for i, t := range a.tasks {
		if a.done[i] {
			continue
		}
		if ab, ok := t.(Aborter); ok {
			ab.Abort()
		}
	}
}

// lazy builds its task on first resume.
type lazy struct {
	build func() Task
	t     Task
}

// Lazy defers construction of a task until it is first resumed. Use it when a
// later step has to look at state written by an earlier step of a sequence.
func Lazy(build func() Task) Task {
	return &lazy{build: build}
}

func (l *lazy) Resume(dt time.Duration) Status {
	if l.t == nil {
		l.t = l.build()
		if l.t == nil {
			return Done
		}
	}
	return l.t.Resume(dt)
}

func (l *lazy) Abort() {
	if a, ok := l.t.(Aborter); ok {
		a.Abort()
	}
}

// scoped holds a resource for the lifetime of its body.
type scoped struct {
	release func()
	body    Task
	done    bool
}

// Scoped wraps body so that release runs exactly once, when body finishes or
// when the task is aborted. The resource must already be held by the caller.
func Scoped(release func(), body Task) Task {
	if body == nil {
		body = Nop()
	}
	return &scoped{release: release, body: body}
}

func (s *scoped) Resume(dt time.Duration) Status {
	if s.done {
		return Done
	}
	if s.body.Resume(dt) == Suspended {
		return Suspended
	}
	s.finish()
	return Done
}

func (s *scoped) Abort() {
	if s.done {
		return
	}
	if a, ok := s.body.(Aborter); ok {
		a.Abort()
	}
	s.finish()
}

func (s *scoped) finish() {
	s.done = true
	if s.release != nil {
		s.release()
	}
}
