package repository

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
)

// StreamRepository - Redis Streams with consumer groups
type StreamRepository interface {
	// ConsumeStream reads new entries until ctx is done
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup is a no-op when the group already exists
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream stores data as JSON under the "data" field
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
