package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/repository/postgres/testhelpers"
)

const (
	spotLohfelden = "11111111-1111-1111-1111-111111111111"
	spotKasselOst = "22222222-2222-2222-2222-222222222222"
	spotWoernitz  = "33333333-3333-3333-3333-333333333333"
)

// ParkingRepositorySuite tests the parking, review and occupancy repositories with a real database
type ParkingRepositorySuite struct {
	suite.Suite
	testDB    *testhelpers.TestDB
	spots     repository.ParkingSpotRepository
	reviews   repository.ReviewRepository
	occupancy repository.OccupancyReportRepository
	ctx       context.Context
}

// SetupSuite runs once before all tests
func (s *ParkingRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB)
	s.Require().NoError(err, "Failed to apply migrations")

	s.spots = testhelpers.NewParkingSpotRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.reviews = testhelpers.NewReviewRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.occupancy = testhelpers.NewOccupancyReportRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests
func (s *ParkingRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

// SetupTest reloads the fixtures before each test
func (s *ParkingRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
	err := testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{"parking_spots.sql"})
	s.Require().NoError(err, "Failed to load fixtures")
}

// ============================================================================
// Spots
// ============================================================================

func (s *ParkingRepositorySuite) TestGetByID_Success() {
	spot, err := s.spots.GetByID(s.ctx, spotLohfelden)
	s.NoError(err)
	s.Require().NotNil(spot)
	s.Equal("Autohof Lohfelden", spot.Name)
	s.Equal(domain.CategoryAutohof, spot.Category)
	s.Equal(domain.OccupancyGreen, spot.CurrentAmpel)
	s.InDelta(51.2736, spot.Location.Lat, 1e-9)
	s.InDelta(9.5411, spot.Location.Lon, 1e-9)
	s.True(spot.Facilities.Shower)
	s.Equal(120, spot.TruckCapacity)
}

func (s *ParkingRepositorySuite) TestGetByID_NotFound() {
	spot, err := s.spots.GetByID(s.ctx, "99999999-9999-9999-9999-999999999999")
	s.NoError(err)
	s.Nil(spot)

	spot, err = s.spots.GetByID(s.ctx, "not-a-uuid")
	s.NoError(err)
	s.Nil(spot)
}

func (s *ParkingRepositorySuite) TestListInBounds() {
	box := domain.BoundingBox{MinLat: 51.0, MinLon: 9.0, MaxLat: 51.5, MaxLon: 10.0}

	spots, err := s.spots.ListInBounds(s.ctx, box)
	s.NoError(err)
	s.Len(spots, 2)
	for _, spot := range spots {
		s.True(box.Contains(spot.Location), spot.Name)
	}
}

func (s *ParkingRepositorySuite) TestListAll() {
	spots, err := s.spots.ListAll(s.ctx)
	s.NoError(err)
	s.Len(spots, 3)
}

func (s *ParkingRepositorySuite) TestCreate_AssignsID() {
	spot := domain.NewParkingSpot("Parkplatz Testweg", domain.Coordinate{Lat: 50.1, Lon: 8.6}, domain.CategoryParkplatz)

	err := s.spots.Create(s.ctx, spot)
	s.NoError(err)
	s.NotEmpty(spot.ID)

	stored, err := s.spots.GetByID(s.ctx, spot.ID)
	s.NoError(err)
	s.Require().NotNil(stored)
	s.Equal(domain.OccupancyUnknown, stored.CurrentAmpel)
	s.Equal("DE", stored.Country)
	s.Equal(0, stored.Ratings.TotalReviews)
}

func (s *ParkingRepositorySuite) TestUpdateOccupancy_LastWriteWins() {
	first := time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond)
	second := first.Add(30 * time.Second)

	s.NoError(s.spots.UpdateOccupancy(s.ctx, spotKasselOst, domain.OccupancyRed, first))
	s.NoError(s.spots.UpdateOccupancy(s.ctx, spotKasselOst, domain.OccupancyYellow, second))

	spot, err := s.spots.GetByID(s.ctx, spotKasselOst)
	s.NoError(err)
	s.Require().NotNil(spot)
	s.Equal(domain.OccupancyYellow, spot.CurrentAmpel)
	s.Require().NotNil(spot.LastAmpelUpdate)
	s.True(second.Equal(*spot.LastAmpelUpdate))
}

func (s *ParkingRepositorySuite) TestUpdateOccupancy_UnknownSpot() {
	err := s.spots.UpdateOccupancy(s.ctx, "99999999-9999-9999-9999-999999999999", domain.OccupancyRed, time.Now())
	s.ErrorIs(err, errors.ErrParkingSpotNotFound)
}

func (s *ParkingRepositorySuite) TestUpdateRatings() {
	ratings := domain.ParkingRatings{Overall: 4.5, Cleanliness: 4, Safety: 3.5, Facilities: 5, FoodQuality: 2, PriceValue: 3, TotalReviews: 2}
	s.NoError(s.spots.UpdateRatings(s.ctx, spotWoernitz, ratings))

	spot, err := s.spots.GetByID(s.ctx, spotWoernitz)
	s.NoError(err)
	s.Require().NotNil(spot)
	s.Equal(ratings, spot.Ratings)
}

func (s *ParkingRepositorySuite) TestExpireOccupancy() {
	now := time.Now().UTC()
	s.NoError(testhelpers.SetSpotAmpelUpdate(s.testDB.DB.DB, spotLohfelden, "GREEN", now.Add(-2*time.Hour)))
	s.NoError(testhelpers.SetSpotAmpelUpdate(s.testDB.DB.DB, spotWoernitz, "RED", now.Add(-time.Minute)))

	ids, err := s.spots.ExpireOccupancy(s.ctx, now.Add(-domain.OccupancyReportTTL))
	s.NoError(err)
	s.Equal([]string{spotLohfelden}, ids)

	spot, err := s.spots.GetByID(s.ctx, spotLohfelden)
	s.NoError(err)
	s.Equal(domain.OccupancyUnknown, spot.CurrentAmpel)

	spot, err = s.spots.GetByID(s.ctx, spotWoernitz)
	s.NoError(err)
	s.Equal(domain.OccupancyRed, spot.CurrentAmpel)
}

// ============================================================================
// Reviews
// ============================================================================

func (s *ParkingRepositorySuite) TestReviews_CreateAndList() {
	base := time.Now().UTC().Truncate(time.Second)
	for i, overall := range []int{3, 5} {
		review := &domain.Review{
			ParkingSpotID: spotLohfelden,
			UserID:        "driver-1",
			UserName:      "Jonas",
			Overall:       overall,
			Cleanliness:   4,
			Safety:        4,
			Facilities:    4,
			FoodQuality:   3,
			PriceValue:    2,
			HasShower:     true,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		s.NoError(s.reviews.Create(s.ctx, review))
		s.NotEmpty(review.ID)
	}

	reviews, err := s.reviews.ListBySpot(s.ctx, spotLohfelden)
	s.NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal(5, reviews[0].Overall, "newest first")
	s.True(reviews[0].HasShower)

	empty, err := s.reviews.ListBySpot(s.ctx, spotKasselOst)
	s.NoError(err)
	s.Empty(empty)
}

// ============================================================================
// Occupancy reports
// ============================================================================

func (s *ParkingRepositorySuite) TestOccupancy_ActiveReports() {
	now := time.Now().UTC().Truncate(time.Second)
	user := domain.UserIdentity{ID: "driver-2", DisplayName: "Mira"}

	fresh := domain.NewOccupancyReport(spotWoernitz, user, domain.OccupancyRed, "voll", now.Add(-5*time.Minute))
	stale := domain.NewOccupancyReport(spotWoernitz, user, domain.OccupancyGreen, "", now.Add(-time.Hour))
	s.NoError(s.occupancy.Create(s.ctx, fresh))
	s.NoError(s.occupancy.Create(s.ctx, stale))

	reports, err := s.occupancy.ListActiveBySpot(s.ctx, spotWoernitz, now)
	s.NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(fresh.ID, reports[0].ID)
	s.Equal(domain.OccupancyRed, reports[0].Status)
	s.Equal("voll", reports[0].Comment)
}

// Run the test suite
func TestParkingRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(ParkingRepositorySuite))
}
