package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	started atomic.Bool
	ignore  bool
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	if w.ignore {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWorkerManager(t *testing.T) {
	t.Run("no workers", func(t *testing.T) {
		m := NewWorkerManager(zap.NewNop())
		assert.Error(t, m.Start(context.Background()))
	})

	t.Run("start and stop", func(t *testing.T) {
		m := NewWorkerManager(zap.NewNop())
		a := &blockingWorker{BaseWorker: NewBaseWorker("a", "", zap.NewNop())}
		b := &blockingWorker{BaseWorker: NewBaseWorker("b", "group", zap.NewNop())}
		m.Register(a)
		m.Register(b)

		require.NoError(t, m.Start(context.Background()))
		assert.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, time.Millisecond)

		require.NoError(t, m.Stop())
		assert.True(t, a.IsStopped())
		assert.Equal(t, "group", b.ConsumerGroup())
	})

	t.Run("stop times out on a stuck worker", func(t *testing.T) {
		m := NewWorkerManager(zap.NewNop())
		m.timeout = 20 * time.Millisecond
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		m.Register(&blockingWorker{BaseWorker: NewBaseWorker("stuck", "", zap.NewNop()), ignore: true})
		require.NoError(t, m.Start(ctx))

		assert.Error(t, m.Stop())
	})
}

func TestBaseWorker_RunContext(t *testing.T) {
	w := NewBaseWorker("ctx", "", zap.NewNop())
	ctx, cancel := w.RunContext(context.Background())
	defer cancel()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the run context")
	}
}
