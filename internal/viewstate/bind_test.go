package viewstate_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/usecase"
	"github.com/truckershub-backend/internal/viewstate"
)

type memorySpots struct {
	mu    sync.Mutex
	spots []*domain.ParkingSpot
}

func (m *memorySpots) set(spots ...*domain.ParkingSpot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spots = spots
}

func (m *memorySpots) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	return nil, nil
}

func (m *memorySpots) ListInBounds(ctx context.Context, box domain.BoundingBox) ([]*domain.ParkingSpot, error) {
	return m.ListAll(ctx)
}

func (m *memorySpots) ListAll(ctx context.Context) ([]*domain.ParkingSpot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spots, nil
}

func (m *memorySpots) Create(ctx context.Context, spot *domain.ParkingSpot) error { return nil }

func (m *memorySpots) UpdateOccupancy(ctx context.Context, spotID string, status domain.OccupancyStatus, at time.Time) error {
	return nil
}

func (m *memorySpots) UpdateRatings(ctx context.Context, spotID string, ratings domain.ParkingRatings) error {
	return nil
}

func (m *memorySpots) ExpireOccupancy(ctx context.Context, olderThan time.Time) ([]string, error) {
	return nil, nil
}

// signalFeed hands out one channel per Subscribe and records unsubscribes
type signalFeed struct {
	mu           sync.Mutex
	events       chan []byte
	unsubscribed bool
}

func (f *signalFeed) Publish(ctx context.Context, channel string, event interface{}) error {
	f.events <- []byte("{}")
	return nil
}

func (f *signalFeed) Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error) {
	return f.events, func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed = true
		return nil
	}, nil
}

func (f *signalFeed) wasUnsubscribed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

func TestBindParking(t *testing.T) {
	spots := &memorySpots{}
	spots.set(&domain.ParkingSpot{ID: "a", Location: domain.Coordinate{Lat: 51.27, Lon: 9.54}})
	feed := &signalFeed{events: make(chan []byte, 4)}

	uc := usecase.NewParkingUseCase(spots, nil, nil, nil, feed, nil, 30*time.Minute, zap.NewNop())
	holder := viewstate.NewParkingHolder()
	defer holder.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := uc.ObserveNearby(ctx, domain.Coordinate{Lat: 51.3, Lon: 9.5}, 0)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		viewstate.BindParking(ctx, holder, sub)
		close(done)
	}()

	state := <-holder.Updates()
	assert.Len(t, state.Spots, 1)

	spots.set(
		&domain.ParkingSpot{ID: "a", Location: domain.Coordinate{Lat: 51.27, Lon: 9.54}},
		&domain.ParkingSpot{ID: "b", Location: domain.Coordinate{Lat: 51.28, Lon: 9.55}},
	)
	require.NoError(t, feed.Publish(ctx, domain.ChannelParkingChanges, nil))

	select {
	case state = <-holder.Updates():
		assert.Len(t, state.Spots, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("holder not refreshed")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bind did not return after cancel")
	}
	assert.True(t, feed.wasUnsubscribed())
}

// flakyReviews serves one list and then fails every reload
type flakyReviews struct {
	mu    sync.Mutex
	calls int
}

func (r *flakyReviews) Create(ctx context.Context, review *domain.Review) error { return nil }

func (r *flakyReviews) ListBySpot(ctx context.Context, spotID string) ([]*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls > 1 {
		return nil, errors.ErrDatabaseError
	}
	return []*domain.Review{{ID: "r1", ParkingSpotID: spotID}}, nil
}

func TestBindReviews_ReloadErrorReachesHolder(t *testing.T) {
	feed := &signalFeed{events: make(chan []byte, 4)}
	uc := usecase.NewParkingUseCase(&memorySpots{}, &flakyReviews{}, nil, nil, feed, nil, 30*time.Minute, zap.NewNop())
	holder := viewstate.NewParkingHolder()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := uc.ObserveReviews(ctx, "spot-1")
	require.NoError(t, err)
	go viewstate.BindReviews(ctx, holder, sub)

	state := <-holder.Updates()
	require.Len(t, state.Reviews, 1)

	require.NoError(t, feed.Publish(ctx, domain.ReviewChannel("spot-1"), nil))

	select {
	case state = <-holder.Updates():
		assert.Len(t, state.Reviews, 1)
		assert.Equal(t, "Database operation failed", state.ErrorMessage)
	case <-time.After(2 * time.Second):
		t.Fatal("reload error never reached the holder")
	}
}

func TestBindParking_SubscriptionEndClosesHolder(t *testing.T) {
	spots := &memorySpots{}
	spots.set(&domain.ParkingSpot{ID: "a"})
	feed := &signalFeed{events: make(chan []byte, 1)}
	uc := usecase.NewParkingUseCase(spots, nil, nil, nil, feed, nil, 30*time.Minute, zap.NewNop())
	holder := viewstate.NewParkingHolder()

	sub, err := uc.ObserveNearby(context.Background(), domain.Coordinate{Lat: 51.3, Lon: 9.5}, 0)
	require.NoError(t, err)
	go viewstate.BindParking(context.Background(), holder, sub)

	<-holder.Updates()
	// the Pub/Sub connection drops
	close(feed.events)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-holder.Updates():
			if !open {
				assert.True(t, holder.Closed())
				return
			}
		case <-deadline:
			t.Fatal("holder still open after the subscription ended")
		}
	}
}

type memoryLocations struct {
	mu        sync.Mutex
	locations map[string]*domain.SavedLocation
}

func (m *memoryLocations) Save(ctx context.Context, location *domain.SavedLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[location.ID] = location
	return nil
}

func (m *memoryLocations) GetByID(ctx context.Context, id string) (*domain.SavedLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locations[id], nil
}

func (m *memoryLocations) ListByUser(ctx context.Context, userID string) ([]*domain.SavedLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.SavedLocation{}
	for _, l := range m.locations {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryLocations) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, id)
	return nil
}

func TestBindLocations_FollowsSaves(t *testing.T) {
	repo := &memoryLocations{locations: map[string]*domain.SavedLocation{}}
	feed := &signalFeed{events: make(chan []byte, 4)}
	uc := usecase.NewLocationUseCase(repo, feed, zap.NewNop())
	user := domain.UserIdentity{ID: "driver-1"}
	holder := viewstate.NewLocationHolder()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := uc.Observe(ctx, user)
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		viewstate.BindLocations(ctx, holder, sub)
		close(done)
	}()

	state := <-holder.Updates()
	assert.Empty(t, state.Locations)

	_, err = uc.Save(ctx, user, &domain.SavedLocation{
		ID:       "l1",
		Name:     "Tankstelle Kirchheim",
		Location: domain.Coordinate{Lat: 50.83, Lon: 9.57},
		Type:     domain.LocationFuel,
	})
	require.NoError(t, err)

	select {
	case state = <-holder.Updates():
		require.Len(t, state.Locations, 1)
		assert.Equal(t, "Tankstelle Kirchheim", state.Locations[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("saved location never reached the holder")
	}

	cancel()
	<-done
	assert.True(t, feed.wasUnsubscribed())
}
