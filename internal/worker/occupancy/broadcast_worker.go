package occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/worker"
)

const defaultRetryBackoff = 500 * time.Millisecond

// BroadcastWorker forwards occupancy stream entries to the ampel broadcaster
type BroadcastWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	broadcaster  repository.OccupancyBroadcaster
	consumerName string
	maxRetries   int
	retryBackoff time.Duration
}

func NewBroadcastWorker(
	streamRepo repository.StreamRepository,
	broadcaster repository.OccupancyBroadcaster,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BroadcastWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &BroadcastWorker{
		BaseWorker:   worker.NewBaseWorker("occupancy-broadcast", consumerGroup, logger),
		streamRepo:   streamRepo,
		broadcaster:  broadcaster,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		retryBackoff: defaultRetryBackoff,
	}
}

func (w *BroadcastWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting occupancy broadcast",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamOccupancyReported, w.ConsumerGroup()); err != nil {
		return eris.Wrap(err, "failed to create consumer group")
	}

	runCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(runCtx, domain.StreamOccupancyReported, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return eris.Wrap(err, "failed to consume stream")
	}

	for msg := range messages {
		w.handle(runCtx, msg)
	}

	if ctx.Err() != nil {
		logger.Info("Context cancelled")
		return ctx.Err()
	}
	logger.Info("Worker stopped")
	return nil
}

// handle acks every entry once it is dealt with: broadcast, unparseable or
// retries exhausted. The ampel topic is retained so the next report supersedes a lost one.
func (w *BroadcastWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseEvent(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if !event.IsBroadcastable() {
		logger.Warn("Event is not broadcastable, skipping", zap.String("spot_id", event.SpotID))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.broadcastWithRetry(ctx, event); err != nil {
		if ctx.Err() != nil {
			// left pending for the next consumer start
			return
		}
		logger.Error("Broadcast failed, dropping",
			zap.String("spot_id", event.SpotID),
			zap.Int("attempts", w.maxRetries),
			zap.Error(err))
	}

	w.ack(ctx, msg.ID)
}

func (w *BroadcastWorker) broadcastWithRetry(ctx context.Context, event *domain.OccupancyReportedEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.broadcaster.Broadcast(ctx, event); err == nil {
			return nil
		}

		w.Logger().Warn("Broadcast attempt failed",
			zap.String("spot_id", event.SpotID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == w.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

func (w *BroadcastWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamOccupancyReported, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}

func parseEvent(msg domain.StreamMessage) (*domain.OccupancyReportedEvent, error) {
	var event domain.OccupancyReportedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal event")
	}
	return &event, nil
}
