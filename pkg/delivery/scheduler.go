package delivery

import "time"

// CancelFunc stops a scheduled task. Calling it after the task has fired
// is a no-op.
type CancelFunc func()

// Scheduler arms deferred tasks. The production implementation is backed
// by timers; tests substitute a manual implementation to drive retries
// deterministically.
type Scheduler interface {
	// Schedule runs task after the given delay unless the returned
	// CancelFunc is called first.
	Schedule(delay time.Duration, task func()) CancelFunc
}

type timerScheduler struct{}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, task func()) CancelFunc {
	t := time.AfterFunc(delay, task)
	return func() { t.Stop() }
}

// Backoff returns the delay applied before automatic delivery attempt n.
// The delay grows exponentially, 2^n seconds, so transient provider
// outages are given progressively more room to clear.
func Backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}
