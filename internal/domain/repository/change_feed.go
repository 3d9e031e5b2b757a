package repository

import "context"

// ChangeFeed - fan-out of change events to live subscribers
type ChangeFeed interface {
	// Publish sends the event as JSON on the channel
	Publish(ctx context.Context, channel string, event interface{}) error

	// Subscribe delivers raw payloads until ctx is done or the returned
	// unsubscribe func is called; the channel is closed afterwards
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error)
}
