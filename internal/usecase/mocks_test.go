package usecase_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/truckershub-backend/internal/domain"
)

// MockParkingSpotRepository is a testify mock of repository.ParkingSpotRepository
type MockParkingSpotRepository struct {
	mock.Mock
}

func (m *MockParkingSpotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) ListInBounds(ctx context.Context, box domain.BoundingBox) ([]*domain.ParkingSpot, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) ListAll(ctx context.Context) ([]*domain.ParkingSpot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) error {
	return m.Called(ctx, spot).Error(0)
}

func (m *MockParkingSpotRepository) UpdateOccupancy(ctx context.Context, spotID string, status domain.OccupancyStatus, at time.Time) error {
	return m.Called(ctx, spotID, status, at).Error(0)
}

func (m *MockParkingSpotRepository) UpdateRatings(ctx context.Context, spotID string, ratings domain.ParkingRatings) error {
	return m.Called(ctx, spotID, ratings).Error(0)
}

func (m *MockParkingSpotRepository) ExpireOccupancy(ctx context.Context, olderThan time.Time) ([]string, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListBySpot(ctx context.Context, spotID string) ([]*domain.Review, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

type MockOccupancyReportRepository struct {
	mock.Mock
}

func (m *MockOccupancyReportRepository) Create(ctx context.Context, report *domain.OccupancyReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockOccupancyReportRepository) ListActiveBySpot(ctx context.Context, spotID string, now time.Time) ([]*domain.OccupancyReport, error) {
	args := m.Called(ctx, spotID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OccupancyReport), args.Error(1)
}

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

type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) CalculateRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}

func (m *MockRouteProvider) Name() string {
	return "mock"
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Save(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	if route.ID == "" {
		route.ID = "route-new"
	}
	return args.Error(0)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) ListSaved(ctx context.Context, userID string) ([]*domain.Route, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRouteRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) GetCountry(ctx context.Context, code string) (*domain.CountryInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryInfo), args.Error(1)
}

func (m *MockCacheRepository) SetCountry(ctx context.Context, country *domain.CountryInfo, ttl time.Duration) error {
	return m.Called(ctx, country, ttl).Error(0)
}

func (m *MockCacheRepository) GetRouteResult(ctx context.Context, key string) (*domain.RouteResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}

func (m *MockCacheRepository) SetRouteResult(ctx context.Context, key string, result *domain.RouteResult, ttl time.Duration) error {
	return m.Called(ctx, key, result, ttl).Error(0)
}

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) GetByCode(ctx context.Context, code string) (*domain.CountryInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryInfo), args.Error(1)
}

func (m *MockCountryRepository) List(ctx context.Context) ([]*domain.CountryInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CountryInfo), args.Error(1)
}

func (m *MockCountryRepository) Upsert(ctx context.Context, country *domain.CountryInfo) error {
	return m.Called(ctx, country).Error(0)
}

type MockDepartureCheckRepository struct {
	mock.Mock
}

func (m *MockDepartureCheckRepository) Create(ctx context.Context, check *domain.DepartureCheck) error {
	return m.Called(ctx, check).Error(0)
}

func (m *MockDepartureCheckRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.DepartureCheck, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DepartureCheck), args.Error(1)
}

type MockUserStatsRepository struct {
	mock.Mock
}

func (m *MockUserStatsRepository) Increment(ctx context.Context, userID string, delta domain.StatsDelta) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockUserStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Save(ctx context.Context, location *domain.SavedLocation) error {
	return m.Called(ctx, location).Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id string) (*domain.SavedLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedLocation), args.Error(1)
}

func (m *MockLocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedLocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavedLocation), args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// fakeFeed is an in-memory change feed
type fakeFeed struct {
	mu        sync.Mutex
	subs      map[string][]chan []byte
	published []string
	failWith  error
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{subs: make(map[string][]chan []byte)}
}

func (f *fakeFeed) Publish(ctx context.Context, channel string, event interface{}) error {
	if f.failWith != nil {
		return f.failWith
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, channel)
	for _, ch := range f.subs[channel] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (f *fakeFeed) Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error) {
	ch := make(chan []byte, 16)

	f.mu.Lock()
	f.subs[channel] = append(f.subs[channel], ch)
	f.mu.Unlock()

	var once sync.Once
	unsubscribe := func() error {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			subs := f.subs[channel]
			for i, c := range subs {
				if c == ch {
					f.subs[channel] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
		return nil
	}
	return ch, unsubscribe, nil
}

func (f *fakeFeed) subscribers(channel string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[channel])
}

func (f *fakeFeed) publishedTo(channel string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.published {
		if c == channel {
			n++
		}
	}
	return n
}
