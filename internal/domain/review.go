package domain

import (
	"time"

	"github.com/rotisserie/eris"
)

const (
	MinSubRating = 1
	MaxSubRating = 5
)

var ErrRatingOutOfRange = eris.New("sub-rating must be between 1 and 5")

// Review - append-only rating of a parking spot
type Review struct {
	ID            string    `json:"id" db:"id"`
	ParkingSpotID string    `json:"parking_spot_id" db:"parking_spot_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	UserName      string    `json:"user_name" db:"user_name"`
	Overall       int       `json:"overall" db:"overall"`
	Cleanliness   int       `json:"cleanliness" db:"cleanliness"`
	Safety        int       `json:"safety" db:"safety"`
	Facilities    int       `json:"facilities" db:"facilities"`
	FoodQuality   int       `json:"food_quality" db:"food_quality"`
	PriceValue    int       `json:"price_value" db:"price_value"`
	Comment       string    `json:"comment" db:"comment"`
	HasShower     bool      `json:"has_shower" db:"has_shower"`
	HasRestaurant bool      `json:"has_restaurant" db:"has_restaurant"`
	HasShop       bool      `json:"has_shop" db:"has_shop"`
	HasFuel       bool      `json:"has_fuel" db:"has_fuel"`
	HasWifi       bool      `json:"has_wifi" db:"has_wifi"`
	HasToilet     bool      `json:"has_toilet" db:"has_toilet"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// SubRatings returns the six ratings in a fixed order:
// overall, cleanliness, safety, facilities, food, price/value.
func (r *Review) SubRatings() [6]int {
	return [6]int{r.Overall, r.Cleanliness, r.Safety, r.Facilities, r.FoodQuality, r.PriceValue}
}

// Validate rejects reviews with any sub-rating outside [1,5]
func (r *Review) Validate() error {
	names := [6]string{"overall", "cleanliness", "safety", "facilities", "food_quality", "price_value"}
	for i, v := range r.SubRatings() {
		if v < MinSubRating || v > MaxSubRating {
			return eris.Wrapf(ErrRatingOutOfRange, "%s=%d", names[i], v)
		}
	}
	return nil
}

// AggregateRatings recomputes a spot's ratings from all of its reviews.
// No reviews yields the zero value.
func AggregateRatings(reviews []*Review) ParkingRatings {
	if len(reviews) == 0 {
		return ParkingRatings{}
	}

	var sums [6]int
	for _, r := range reviews {
		for i, v := range r.SubRatings() {
			sums[i] += v
		}
	}

	n := float64(len(reviews))
	return ParkingRatings{
		Overall:      float64(sums[0]) / n,
		Cleanliness:  float64(sums[1]) / n,
		Safety:       float64(sums[2]) / n,
		Facilities:   float64(sums[3]) / n,
		FoodQuality:  float64(sums[4]) / n,
		PriceValue:   float64(sums[5]) / n,
		TotalReviews: len(reviews),
	}
}
