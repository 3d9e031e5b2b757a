package occupancy

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, event *domain.OccupancyReportedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockBroadcaster) Close() {}

func queued(msgs ...domain.StreamMessage) <-chan domain.StreamMessage {
	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return ch
}

func forSpot(id string) interface{} {
	return mock.MatchedBy(func(e *domain.OccupancyReportedEvent) bool { return e.SpotID == id })
}

func TestBroadcastWorker_Start(t *testing.T) {
	streams := &MockStreamRepository{}
	broadcaster := &MockBroadcaster{}

	msgs := queued(
		domain.StreamMessage{ID: "1-0", Data: `{"spot_id":"a","status":"RED"}`},
		domain.StreamMessage{ID: "2-0", Data: `not json`},
		domain.StreamMessage{ID: "3-0", Data: `{"spot_id":"b","status":"PURPLE"}`},
		domain.StreamMessage{ID: "4-0", Data: `{"spot_id":"c","status":"GREEN"}`},
	)

	streams.On("CreateConsumerGroup", mock.Anything, domain.StreamOccupancyReported, "hub").Return(nil)
	streams.On("ConsumeStream", mock.Anything, domain.StreamOccupancyReported, "hub", mock.Anything).Return(msgs, nil)
	streams.On("AckMessage", mock.Anything, domain.StreamOccupancyReported, "hub", mock.Anything).Return(nil)

	broadcaster.On("Broadcast", mock.Anything, forSpot("a")).Return(nil)
	broadcaster.On("Broadcast", mock.Anything, forSpot("c")).Return(eris.New("broker down"))

	w := NewBroadcastWorker(streams, broadcaster, "hub", 3, zap.NewNop())
	w.retryBackoff = time.Millisecond

	require.NoError(t, w.Start(context.Background()))

	streams.AssertNumberOfCalls(t, "AckMessage", 4)
	broadcaster.AssertNumberOfCalls(t, "Broadcast", 4)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, forSpot("b"))
}

func TestBroadcastWorker_RetryRecovers(t *testing.T) {
	streams := &MockStreamRepository{}
	broadcaster := &MockBroadcaster{}

	streams.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	streams.On("ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(queued(domain.StreamMessage{ID: "1-0", Data: `{"spot_id":"a","status":"YELLOW"}`}), nil)
	streams.On("AckMessage", mock.Anything, mock.Anything, mock.Anything, "1-0").Return(nil)

	broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(eris.New("timeout")).Once()
	broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(nil).Once()

	w := NewBroadcastWorker(streams, broadcaster, "hub", 5, zap.NewNop())
	w.retryBackoff = time.Millisecond

	require.NoError(t, w.Start(context.Background()))

	broadcaster.AssertNumberOfCalls(t, "Broadcast", 2)
	streams.AssertExpectations(t)
}

func TestBroadcastWorker_ConsumerGroupFailure(t *testing.T) {
	streams := &MockStreamRepository{}
	streams.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(eris.New("NOAUTH"))

	w := NewBroadcastWorker(streams, &MockBroadcaster{}, "hub", 1, zap.NewNop())

	assert.Error(t, w.Start(context.Background()))
	streams.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

type countingExpirer struct {
	mu    sync.Mutex
	calls []time.Time
	fail  atomic.Bool
}

func (e *countingExpirer) ExpireStaleOccupancy(ctx context.Context, now time.Time) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, now)
	if e.fail.Load() {
		return nil, eris.New("db gone")
	}
	return []string{"spot-1"}, nil
}

func (e *countingExpirer) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func TestExpiryWorker(t *testing.T) {
	t.Run("sweeps until stopped", func(t *testing.T) {
		expirer := &countingExpirer{}
		w := NewExpiryWorker(expirer, 5*time.Millisecond, zap.NewNop())

		done := make(chan error, 1)
		go func() { done <- w.Start(context.Background()) }()

		assert.Eventually(t, func() bool { return expirer.count() >= 3 }, time.Second, time.Millisecond)
		require.NoError(t, w.Stop())

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
	})

	t.Run("keeps running after a failed sweep", func(t *testing.T) {
		expirer := &countingExpirer{}
		expirer.fail.Store(true)
		w := NewExpiryWorker(expirer, 5*time.Millisecond, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Start(ctx) }()

		assert.Eventually(t, func() bool { return expirer.count() >= 2 }, time.Second, time.Millisecond)
		cancel()

		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("uses the injected clock", func(t *testing.T) {
		expirer := &countingExpirer{}
		fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		w := NewExpiryWorker(expirer, time.Hour, zap.NewNop())
		w.now = func() time.Time { return fixed }

		w.sweep(context.Background())

		require.Equal(t, 1, expirer.count())
		assert.Equal(t, fixed, expirer.calls[0])
	})
}
