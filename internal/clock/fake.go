package clock

import (
	"sort"
	"time"
)

// Fake is a deterministic virtual clock. Timers fire only from Advance, in
// due-time order, on the goroutine calling Advance.
type Fake struct {
	now    time.Time
	nextID int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *Fake
	id      int
	period  time.Duration
	next    time.Time
	fn      func()
	stopped bool
}

// NewFake returns a fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current virtual time.
func (f *Fake) Now() time.Time { return f.now }

// Every registers a recurring timer whose first fire is d from now.
func (f *Fake) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	f.nextID++
	t := &fakeTimer{
		clock:  f,
		id:     f.nextID,
		period: d,
		next:   f.now.Add(d),
		fn:     fn,
	}
	f.timers = append(f.timers, t)
	return t
}

// Active returns the number of timers that have not been stopped.
func (f *Fake) Active() int { return len(f.timers) }

// Advance moves virtual time forward by d, firing every timer that comes due
// along the way. It returns the number of fires.
func (f *Fake) Advance(d time.Duration) int {
	target := f.now.Add(d)
	fired := 0
	for {
		t := f.nextDue(target)
		if t == nil {
			break
		}
		f.now = t.next
		t.next = t.next.Add(t.period)
		t.fn()
		fired++
	}
	f.now = target
	return fired
}

func (f *Fake) nextDue(target time.Time) *fakeTimer {
	if len(f.timers) == 0 {
		return nil
	}
	due := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].id < due[j].id
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

func (t *fakeTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	f := t.clock
	for i, other := range f.timers {
		if other == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}
