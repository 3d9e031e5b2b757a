package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/truckershub-backend/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm - great-circle distance between two points (haversine)
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	lat1Rad := a.Lat * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0

	// cosine product first keeps the result bit-identical when a and b swap
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*(math.Cos(lat1Rad)*math.Cos(lat2Rad))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatDistance renders a distance for display:
// "850 m" below one kilometer, "3.4 km" below ten, "27 km" above.
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	case km < 10:
		return fmt.Sprintf("%.1f km", km)
	default:
		return fmt.Sprintf("%d km", int(math.Round(km)))
	}
}

// ValidateCoordinates checks WGS84 ranges
func ValidateCoordinates(c domain.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// ValidateRadius accepts 0.1 - 500 km
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 500
}

// BoundsAround returns the box enclosing the circle of radiusKm around center.
// Circles reaching a pole or crossing the ±180° meridian span every longitude.
func BoundsAround(center domain.Coordinate, radiusKm float64) domain.BoundingBox {
	angular := radiusKm / earthRadiusKm
	dLat := angular * 180.0 / math.Pi

	box := domain.BoundingBox{
		MinLat: math.Max(-90, center.Lat-dLat),
		MaxLat: math.Min(90, center.Lat+dLat),
		MinLon: -180,
		MaxLon: 180,
	}
	if box.MaxLat == 90 || box.MinLat == -90 {
		return box
	}

	cosLat := math.Cos(center.Lat * math.Pi / 180.0)
	if ratio := math.Sin(angular) / cosLat; ratio < 1 {
		dLon := math.Asin(ratio) * 180.0 / math.Pi
		if center.Lon-dLon >= -180 && center.Lon+dLon <= 180 {
			box.MinLon = center.Lon - dLon
			box.MaxLon = center.Lon + dLon
		}
	}
	return box
}

// FilterWithinRadius keeps the spots inside the circle, nearest first
func FilterWithinRadius(spots []*domain.ParkingSpot, center domain.Coordinate, radiusKm float64) []*domain.ParkingSpot {
	type withDistance struct {
		spot *domain.ParkingSpot
		km   float64
	}

	candidates := make([]withDistance, 0, len(spots))
	for _, s := range spots {
		if d := DistanceKm(center, s.Location); d <= radiusKm {
			candidates = append(candidates, withDistance{spot: s, km: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].km < candidates[j].km
	})

	result := make([]*domain.ParkingSpot, len(candidates))
	for i, c := range candidates {
		result[i] = c.spot
	}
	return result
}
