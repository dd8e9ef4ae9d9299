package queue

import (
	"context"
	"time"
)

// Handler processes a fired job payload. Returning an error marks the fire
// as failed; the queue's retry policy decides whether it runs again.
type Handler func(ctx context.Context, payload []byte) error

// DelayedQueue schedules one logical job per key. Enqueueing an existing key
// replaces its payload and fire time, which is what gives the
// one-outstanding-job-per-user guarantee when keys are derived from user ids.
// Delivery is at least once: consumers must tolerate duplicate fires.
type DelayedQueue interface {
	// Enqueue schedules payload to fire after delay. An existing job under
	// the same key is superseded.
	Enqueue(ctx context.Context, key string, payload []byte, delay time.Duration) error

	// Cancel removes an outstanding job. Cancelling an absent key is a
	// no-op and returns false.
	Cancel(ctx context.Context, key string) (bool, error)
}
