package messaging

import "context"

// NopPublisher discards every event. It stands in when the broker is
// unreachable at startup: the pipeline keeps running with publishing
// disabled for the process lifetime.
type NopPublisher struct{}

// PublishTrigger implements Publisher as a no-op.
func (NopPublisher) PublishTrigger(ctx context.Context, active bool) error { return nil }

// PublishPosition implements Publisher as a no-op.
func (NopPublisher) PublishPosition(ctx context.Context, x, y float64) error { return nil }

// Close implements Publisher as a no-op.
func (NopPublisher) Close() error { return nil }
