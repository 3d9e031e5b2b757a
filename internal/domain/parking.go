package domain

import "time"

// ParkingCategory - kind of truck parking
type ParkingCategory string

const (
	CategoryAutohof         ParkingCategory = "AUTOHOF"         // highway service area
	CategoryRaststaette     ParkingCategory = "RASTSTAETTE"     // rest stop
	CategoryIndustriegebiet ParkingCategory = "INDUSTRIEGEBIET" // industrial area
	CategoryParkplatz       ParkingCategory = "PARKPLATZ"       // plain lot
	CategoryPrivat          ParkingCategory = "PRIVAT"
	CategoryUnknown         ParkingCategory = "UNKNOWN"
)

// IsValid reports whether c is one of the known categories
func (c ParkingCategory) IsValid() bool {
	switch c {
	case CategoryAutohof, CategoryRaststaette, CategoryIndustriegebiet,
		CategoryParkplatz, CategoryPrivat, CategoryUnknown:
		return true
	}
	return false
}

// OccupancyStatus - the "Ampel" traffic light of a parking spot
type OccupancyStatus string

const (
	OccupancyGreen   OccupancyStatus = "GREEN"
	OccupancyYellow  OccupancyStatus = "YELLOW"
	OccupancyRed     OccupancyStatus = "RED"
	OccupancyUnknown OccupancyStatus = "UNKNOWN"
)

func (s OccupancyStatus) IsValid() bool {
	switch s {
	case OccupancyGreen, OccupancyYellow, OccupancyRed, OccupancyUnknown:
		return true
	}
	return false
}

// Facilities available at a spot
type Facilities struct {
	Toilet     bool `json:"toilet" db:"has_toilet"`
	Shower     bool `json:"shower" db:"has_shower"`
	Restaurant bool `json:"restaurant" db:"has_restaurant"`
	Shop       bool `json:"shop" db:"has_shop"`
	Wifi       bool `json:"wifi" db:"has_wifi"`
	Fuel       bool `json:"fuel" db:"has_fuel"`
}

// ParkingRatings - aggregate derived from the reviews of one spot.
// Never written by clients.
type ParkingRatings struct {
	Overall      float64 `json:"overall" db:"rating_overall"`
	Cleanliness  float64 `json:"cleanliness" db:"rating_cleanliness"`
	Safety       float64 `json:"safety" db:"rating_safety"`
	Facilities   float64 `json:"facilities" db:"rating_facilities"`
	FoodQuality  float64 `json:"food_quality" db:"rating_food_quality"`
	PriceValue   float64 `json:"price_value" db:"rating_price_value"`
	TotalReviews int     `json:"total_reviews" db:"total_reviews"`
}

type ParkingSpot struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Address         string          `json:"address" db:"address"`
	Country         string          `json:"country" db:"country"`
	Description     string          `json:"description" db:"description"`
	Location        Coordinate      `json:"location"`
	Category        ParkingCategory `json:"category" db:"category"`
	Facilities      Facilities      `json:"facilities"`
	IsPaid          bool            `json:"is_paid" db:"is_paid"`
	PricePerNight   float64         `json:"price_per_night" db:"price_per_night"`
	TruckCapacity   int             `json:"truck_capacity" db:"truck_capacity"`
	CurrentAmpel    OccupancyStatus `json:"current_ampel" db:"current_ampel"`
	LastAmpelUpdate *time.Time      `json:"last_ampel_update,omitempty" db:"last_ampel_update"`
	Ratings         ParkingRatings  `json:"ratings"`
	ReportedBy      string          `json:"reported_by,omitempty" db:"reported_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// NewParkingSpot returns a spot with the defaults a freshly registered spot carries:
// unknown occupancy, German country code, empty ratings.
func NewParkingSpot(name string, location Coordinate, category ParkingCategory) *ParkingSpot {
	if !category.IsValid() {
		category = CategoryUnknown
	}
	return &ParkingSpot{
		Name:         name,
		Country:      "DE",
		Location:     location,
		Category:     category,
		CurrentAmpel: OccupancyUnknown,
	}
}
