package occupancy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/worker"
)

// Expirer resets spots whose last report is older than the report lifetime
type Expirer interface {
	ExpireStaleOccupancy(ctx context.Context, now time.Time) ([]string, error)
}

// ExpiryWorker sweeps stale occupancy on a fixed interval
type ExpiryWorker struct {
	*worker.BaseWorker
	expirer  Expirer
	interval time.Duration
	now      func() time.Time
}

func NewExpiryWorker(expirer Expirer, interval time.Duration, logger *zap.Logger) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryWorker{
		BaseWorker: worker.NewBaseWorker("occupancy-expiry", "", logger),
		expirer:    expirer,
		interval:   interval,
		now:        time.Now,
	}
}

// Start sweeps once right away, then on every tick
func (w *ExpiryWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting occupancy expiry", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)

		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	ids, err := w.expirer.ExpireStaleOccupancy(ctx, w.now())
	if err != nil {
		// next tick retries
		w.Logger().Error("Occupancy sweep failed", zap.Error(err))
		return
	}
	if len(ids) > 0 {
		w.Logger().Debug("Occupancy sweep", zap.Strings("spot_ids", ids))
	}
}
