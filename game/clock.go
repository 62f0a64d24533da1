package game

import "time"

// Clock and Scheduler are the coordinator's only sources of time, kept
// behind interfaces so tests can fire timers deterministically.

type Clock interface {
	Now() time.Time
}

// Timer is a cancellable deferred call. Cancel is best-effort and
// idempotent: cancelling an already-fired or already-cancelled timer is
// a silent no-op. It reports whether the call was prevented.
type Timer interface {
	Cancel() bool
}

type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Timer
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func NewWallClock() Clock { return wallClock{} }

type wallTimer struct {
	t *time.Timer
}

// Stop on a fired or stopped time.Timer already returns false without
// erroring, which is exactly the idempotence Timer requires.
func (w wallTimer) Cancel() bool { return w.t.Stop() }

type wallScheduler struct{}

func (wallScheduler) Schedule(delay time.Duration, fn func()) Timer {
	return wallTimer{t: time.AfterFunc(delay, fn)}
}

func NewWallScheduler() Scheduler { return wallScheduler{} }
