package domain

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestSavedLocation_Validate(t *testing.T) {
	valid := func() *SavedLocation {
		return &SavedLocation{
			Name:         "Spedition Krause",
			Location:     Coordinate{Lat: 51.31, Lon: 9.47},
			Type:         LocationCompany,
			Requirements: "Helmet, safety shoes",
		}
	}

	assert.NoError(t, valid().Validate())

	t.Run("blank name", func(t *testing.T) {
		l := valid()
		l.Name = "   "
		assert.ErrorIs(t, l.Validate(), ErrLocationNameRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		l := valid()
		l.Type = "DEPOT"
		err := l.Validate()
		assert.True(t, eris.Is(err, ErrLocationTypeInvalid))
		assert.Contains(t, err.Error(), "DEPOT")
	})

	t.Run("every known type", func(t *testing.T) {
		for _, typ := range []LocationType{LocationCompany, LocationPrivate, LocationFuel, LocationOther} {
			l := valid()
			l.Type = typ
			assert.NoError(t, l.Validate(), string(typ))
		}
	})
}

func TestStatsDelta_IsZero(t *testing.T) {
	assert.True(t, StatsDelta{}.IsZero())
	assert.False(t, StatsDelta{TotalRatings: 1}.IsZero())
}
