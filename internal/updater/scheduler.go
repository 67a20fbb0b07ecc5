// internal/updater/scheduler.go
package updater

import (
	"context"
	"time"
)

// Clock abstracts time so the scheduler can be driven by tests
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// RealClock returns the wall clock
func RealClock() Clock {
	return realClock{}
}

// Scheduler runs work repeatedly with a fixed sleep between runs
type Scheduler struct {
	clock Clock
}

// NewScheduler creates a scheduler. A nil clock means the wall clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{clock: clock}
}

// Every runs work, then sleeps interval, until ctx is cancelled. Runs never
// overlap: the sleep starts only after work returns.
func (s *Scheduler) Every(ctx context.Context, interval time.Duration, work func(ctx context.Context)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		work(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(interval):
		}
	}
}
