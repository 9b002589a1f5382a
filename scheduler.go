package starship

import "time"

// maxCatchUp bounds how many overdue runs a periodic task makes in one Poll.
// Further backlog is dropped and the task is rescheduled from now.
const maxCatchUp = 8

// Clock supplies the current time to a Scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Useful for deterministic tests and
// scripted runs.
type ManualClock struct {
	t time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Task is a scheduled callback. A Task returned by Every repeats until
// stopped; one returned by After runs once.
type Task struct {
	name     string
	interval time.Duration
	next     time.Time
	fn       func()
	once     bool
	stopped  bool
}

// Name returns the name the task was scheduled with.
func (t *Task) Name() string { return t.name }

// Active reports whether the task will run again.
func (t *Task) Active() bool { return t != nil && !t.stopped }

// Stop cancels the task. Stopping a stopped task is a no-op.
func (t *Task) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Scheduler runs named tasks cooperatively from Poll. Tasks never overlap:
// each callback completes before the next one starts.
type Scheduler struct {
	clock Clock
	tasks []*Task
	buf   []*Task
}

// NewScheduler creates a scheduler driven by clock. A nil clock uses SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock { return s.clock }

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// Every schedules fn to run every interval, first after one interval.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) *Task {
	if interval <= 0 {
		panic("starship: task interval must be positive")
	}
	t := &Task{name: name, interval: interval, next: s.clock.Now().Add(interval), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// After schedules fn to run once after delay.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) *Task {
	t := &Task{name: name, interval: delay, next: s.clock.Now().Add(delay), fn: fn, once: true}
	s.tasks = append(s.tasks, t)
	return t
}

// Len returns the number of tasks that have not been stopped.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Poll runs every due task in scheduling order and returns the number of
// callbacks made. Tasks scheduled by a callback are first considered on the
// next Poll.
func (s *Scheduler) Poll() int {
	now := s.clock.Now()
	s.buf = append(s.buf[:0], s.tasks...)
	runs := 0
	for _, t := range s.buf {
		for n := 0; !t.stopped && !now.Before(t.next); n++ {
			if n == maxCatchUp {
				t.next = now.Add(t.interval)
				break
			}
			t.next = t.next.Add(t.interval)
			if t.once {
				t.stopped = true
			}
			t.fn()
			runs++
		}
	}
	s.compact()
	return runs
}

// compact drops stopped tasks.
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
