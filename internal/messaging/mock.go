package messaging

import (
	"context"
	"sync"
)

// Event kinds recorded by the RecorderPublisher.
const (
	KindTrigger  = "trigger"
	KindPosition = "position"
)

// RecordedEvent is one publish captured by the RecorderPublisher.
type RecordedEvent struct {
	Kind   string
	Active bool    // set for trigger events
	X, Y   float64 // set for position events
}

// RecorderPublisher is a test implementation of Publisher that captures
// published events in order and can simulate per-call failures.
type RecorderPublisher struct {
	mu     sync.Mutex
	events []RecordedEvent
	err    error
}

// NewRecorderPublisher creates a new RecorderPublisher.
func NewRecorderPublisher() *RecorderPublisher {
	return &RecorderPublisher{}
}

// SetError makes subsequent publish calls return err.
func (r *RecorderPublisher) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// PublishTrigger records a trigger event.
func (r *RecorderPublisher) PublishTrigger(ctx context.Context, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, RecordedEvent{Kind: KindTrigger, Active: active})
	return nil
}

// PublishPosition records a position event.
func (r *RecorderPublisher) PublishPosition(ctx context.Context, x, y float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, RecordedEvent{Kind: KindPosition, X: x, Y: y})
	return nil
}

// Close is a no-op for the recorder.
func (r *RecorderPublisher) Close() error { return nil }

// Events returns a copy of the recorded events in publish order.
func (r *RecorderPublisher) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}
