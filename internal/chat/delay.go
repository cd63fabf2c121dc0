package chat

import (
	"context"
	"time"
)

// Delay blocks before the responder is asked. It returns early with ctx.Err()
// when ctx ends.
type Delay func(ctx context.Context) error

// NoDelay returns immediately
func NoDelay(ctx context.Context) error {
	return ctx.Err()
}

// FixedDelay waits d using a timer
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
