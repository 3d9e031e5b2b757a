package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOccupancyReport(t *testing.T) {
	created := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	user := UserIdentity{ID: "u1", DisplayName: "Trucker Joe"}

	r := NewOccupancyReport("spot-1", user, OccupancyYellow, "half full", created)

	assert.Equal(t, "spot-1", r.ParkingSpotID)
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, "Trucker Joe", r.UserName)
	assert.Equal(t, created.Add(30*time.Minute), r.ExpiresAt)

	assert.False(t, r.IsExpired(created))
	assert.False(t, r.IsExpired(created.Add(29*time.Minute)))
	assert.True(t, r.IsExpired(created.Add(30*time.Minute)))
	assert.True(t, r.IsExpired(created.Add(2*time.Hour)))
}

func TestNewParkingSpot_Defaults(t *testing.T) {
	spot := NewParkingSpot("Autohof Lohfelden", Coordinate{Lat: 51.26, Lon: 9.53}, ParkingCategory("MOTEL"))

	assert.Equal(t, OccupancyUnknown, spot.CurrentAmpel)
	assert.Equal(t, CategoryUnknown, spot.Category)
	assert.Equal(t, "DE", spot.Country)
	assert.Nil(t, spot.LastAmpelUpdate)
	assert.Zero(t, spot.Ratings.TotalReviews)
}

func TestOccupancyStatus_IsValid(t *testing.T) {
	for _, s := range []OccupancyStatus{OccupancyGreen, OccupancyYellow, OccupancyRed, OccupancyUnknown} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OccupancyStatus("green").IsValid())
	assert.False(t, OccupancyStatus("").IsValid())
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoundingBox{MinLat: 50, MinLon: 8, MaxLat: 52, MaxLon: 10}

	assert.True(t, box.Contains(Coordinate{Lat: 51, Lon: 9}))
	assert.True(t, box.Contains(Coordinate{Lat: 50, Lon: 10}))
	assert.False(t, box.Contains(Coordinate{Lat: 49.99, Lon: 9}))
	assert.False(t, box.Contains(Coordinate{Lat: 51, Lon: 10.01}))
}
