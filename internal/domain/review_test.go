package domain

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReview() *Review {
	return &Review{
		ParkingSpotID: "spot-1",
		UserID:        "user-1",
		Overall:       5,
		Cleanliness:   4,
		Safety:        3,
		Facilities:    2,
		FoodQuality:   1,
		PriceValue:    5,
	}
}

func TestReview_Validate(t *testing.T) {
	t.Run("all ratings inside bounds", func(t *testing.T) {
		assert.NoError(t, validReview().Validate())
	})

	mutations := map[string]func(r *Review){
		"overall zero":      func(r *Review) { r.Overall = 0 },
		"cleanliness six":   func(r *Review) { r.Cleanliness = 6 },
		"safety negative":   func(r *Review) { r.Safety = -1 },
		"facilities zero":   func(r *Review) { r.Facilities = 0 },
		"food quality huge": func(r *Review) { r.FoodQuality = 100 },
		"price value zero":  func(r *Review) { r.PriceValue = 0 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			r := validReview()
			mutate(r)

			err := r.Validate()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrRatingOutOfRange))
		})
	}
}

func TestAggregateRatings(t *testing.T) {
	t.Run("no reviews", func(t *testing.T) {
		ratings := AggregateRatings(nil)
		assert.Equal(t, 0.0, ratings.Overall)
		assert.Equal(t, 0, ratings.TotalReviews)
	})

	t.Run("mean over all reviews", func(t *testing.T) {
		var reviews []*Review
		for _, overall := range []int{5, 3, 4} {
			r := validReview()
			r.Overall = overall
			reviews = append(reviews, r)
		}

		ratings := AggregateRatings(reviews)
		assert.Equal(t, 4.0, ratings.Overall)
		assert.Equal(t, 3, ratings.TotalReviews)
		assert.Equal(t, 4.0, ratings.Cleanliness)
		assert.Equal(t, 1.0, ratings.FoodQuality)
	})

	t.Run("single review", func(t *testing.T) {
		ratings := AggregateRatings([]*Review{validReview()})
		assert.Equal(t, 5.0, ratings.Overall)
		assert.Equal(t, 1, ratings.TotalReviews)
	})
}
