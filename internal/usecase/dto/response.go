package dto

import (
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/geo"
)

// ParkingDetails - a spot together with its reviews and live reports
type ParkingDetails struct {
	Spot          *domain.ParkingSpot       `json:"spot"`
	Reviews       []*domain.Review          `json:"reviews"`
	ActiveReports []*domain.OccupancyReport `json:"active_reports"`
}

// NearbySpot - a spot with its distance from the query point
type NearbySpot struct {
	*domain.ParkingSpot
	DistanceKm      float64 `json:"distance_km"`
	DistanceDisplay string  `json:"distance_display"`
}

type NearbyResponse struct {
	Spots []NearbySpot `json:"spots"`
	Total int          `json:"total"`
}

// NewNearbyResponse annotates each spot with its distance from center
func NewNearbyResponse(spots []*domain.ParkingSpot, center domain.Coordinate) *NearbyResponse {
	result := make([]NearbySpot, 0, len(spots))
	for _, spot := range spots {
		km := geo.DistanceKm(center, spot.Location)
		result = append(result, NearbySpot{
			ParkingSpot:     spot,
			DistanceKm:      km,
			DistanceDisplay: geo.FormatDistance(km),
		})
	}
	return &NearbyResponse{Spots: result, Total: len(result)}
}

// RouteResponse - a route with display strings for the client
type RouteResponse struct {
	*domain.Route
	DistanceDisplay string `json:"distance_display"`
	DurationDisplay string `json:"duration_display"`
}

func NewRouteResponse(route *domain.Route) RouteResponse {
	return RouteResponse{
		Route:           route,
		DistanceDisplay: route.FormattedDistance(),
		DurationDisplay: route.FormattedDuration(),
	}
}

type PolylineResponse struct {
	Points []domain.Coordinate `json:"points"`
	Count  int                 `json:"count"`
}

type DepartureCheckResponse struct {
	*domain.DepartureCheck
	Pending []string `json:"pending"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
