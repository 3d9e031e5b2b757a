package dto

import "github.com/truckershub-backend/internal/domain"

// Point - coordinates of a point
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func (p Point) Coordinate() domain.Coordinate {
	return domain.Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// NearbyRequest - query of /parking/nearby; radius 0 means the whole collection
type NearbyRequest struct {
	Lat      float64 `query:"lat" validate:"min=-90,max=90"`
	Lon      float64 `query:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `query:"radius_km" validate:"omitempty,min=0.1,max=500"`
}

// SubmitReviewRequest - body of POST /parking/:id/reviews.
// Rating bounds are checked by the use case so they surface as INVALID_REVIEW.
type SubmitReviewRequest struct {
	Overall       int    `json:"overall"`
	Cleanliness   int    `json:"cleanliness"`
	Safety        int    `json:"safety"`
	Facilities    int    `json:"facilities"`
	FoodQuality   int    `json:"food_quality"`
	PriceValue    int    `json:"price_value"`
	Comment       string `json:"comment" validate:"max=2000"`
	HasShower     bool   `json:"has_shower"`
	HasRestaurant bool   `json:"has_restaurant"`
	HasShop       bool   `json:"has_shop"`
	HasFuel       bool   `json:"has_fuel"`
	HasWifi       bool   `json:"has_wifi"`
	HasToilet     bool   `json:"has_toilet"`
}

func (r *SubmitReviewRequest) ToReview() *domain.Review {
	return &domain.Review{
		Overall:       r.Overall,
		Cleanliness:   r.Cleanliness,
		Safety:        r.Safety,
		Facilities:    r.Facilities,
		FoodQuality:   r.FoodQuality,
		PriceValue:    r.PriceValue,
		Comment:       r.Comment,
		HasShower:     r.HasShower,
		HasRestaurant: r.HasRestaurant,
		HasShop:       r.HasShop,
		HasFuel:       r.HasFuel,
		HasWifi:       r.HasWifi,
		HasToilet:     r.HasToilet,
	}
}

// ReportOccupancyRequest - body of POST /parking/:id/occupancy
type ReportOccupancyRequest struct {
	Status  domain.OccupancyStatus `json:"status" validate:"required,occupancy_status"`
	Comment string                 `json:"comment" validate:"max=500"`
}

// RoutePointInput - start, end or waypoint of a route calculation
type RoutePointInput struct {
	Name    string `json:"name" validate:"max=200"`
	Address string `json:"address" validate:"max=300"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
}

func (p RoutePointInput) ToRoutePoint() domain.RoutePoint {
	return domain.RoutePoint{
		Name:     p.Name,
		Address:  p.Address,
		Location: domain.Coordinate{Lat: p.Lat, Lon: p.Lon},
	}
}

// CalculateRouteRequest - body of POST /routes/calculate
type CalculateRouteRequest struct {
	Name      string              `json:"name" validate:"max=200"`
	Start     RoutePointInput     `json:"start"`
	End       RoutePointInput     `json:"end"`
	Waypoints []RoutePointInput   `json:"waypoints" validate:"max=20,dive"`
	Truck     domain.TruckProfile `json:"truck_profile"`
	Profile   string              `json:"profile,omitempty"`
	Locale    string              `json:"locale,omitempty" validate:"omitempty,len=2"`
}

// DepartureCheckRequest - body of POST /checklist
type DepartureCheckRequest struct {
	Checks map[string]bool `json:"checks" validate:"required"`
}

// SaveLocationRequest - body of POST /locations and PUT /locations/:id.
// Name and type are checked by the use case so they surface as INVALID_LOCATION.
type SaveLocationRequest struct {
	Name         string              `json:"name" validate:"max=200"`
	Lat          float64             `json:"lat" validate:"min=-90,max=90"`
	Lon          float64             `json:"lon" validate:"min=-180,max=180"`
	Type         domain.LocationType `json:"type"`
	Description  string              `json:"description" validate:"max=4000"`
	Requirements string              `json:"requirements" validate:"max=1000"`
}

func (r *SaveLocationRequest) ToLocation(id string) *domain.SavedLocation {
	return &domain.SavedLocation{
		ID:           id,
		Name:         r.Name,
		Location:     domain.Coordinate{Lat: r.Lat, Lon: r.Lon},
		Type:         r.Type,
		Description:  r.Description,
		Requirements: r.Requirements,
	}
}
