package redis

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/domain/repository"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

type changeFeed struct {
	client *redis.Client
	logger *zap.Logger
}

// NewChangeFeed returns a ChangeFeed on Redis Pub/Sub
func NewChangeFeed(client *redis.Client, logger *zap.Logger) repository.ChangeFeed {
	return &changeFeed{
		client: client,
		logger: logger,
	}
}

func (f *changeFeed) Publish(ctx context.Context, channel string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return eris.Wrap(err, "failed to marshal change event")
	}

	if err := f.client.Publish(ctx, channel, payload).Err(); err != nil {
		f.logger.Error("Failed to publish change",
			zap.String("channel", channel),
			zap.Error(err))
		return eris.Wrapf(err, "failed to publish change to %s", channel)
	}
	return nil
}

// Subscribe returns only after Redis confirmed the subscription, so events
// published after the call are never missed.
func (f *changeFeed) Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error) {
	pubsub := f.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, eris.Wrapf(err, "failed to subscribe to %s", channel)
	}

	out := make(chan []byte, subscriberBuffer)
	done := make(chan struct{})

	var once sync.Once
	var closeErr error
	unsubscribe := func() error {
		once.Do(func() {
			close(done)
			closeErr = pubsub.Close()
		})
		return closeErr
	}

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = unsubscribe()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					_ = unsubscribe()
					return
				case <-done:
					return
				}
			}
		}
	}()

	f.logger.Debug("Subscribed to change feed", zap.String("channel", channel))
	return out, unsubscribe, nil
}
