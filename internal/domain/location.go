package domain

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// LocationType - what a saved place is to the driver
type LocationType string

const (
	LocationCompany LocationType = "COMPANY" // loading or unloading site
	LocationPrivate LocationType = "PRIVATE"
	LocationFuel    LocationType = "FUEL"
	LocationOther   LocationType = "OTHER"
)

func (t LocationType) IsValid() bool {
	switch t {
	case LocationCompany, LocationPrivate, LocationFuel, LocationOther:
		return true
	}
	return false
}

var (
	ErrLocationNameRequired = eris.New("location name is required")
	ErrLocationTypeInvalid  = eris.New("location type must be COMPANY, PRIVATE, FUEL or OTHER")
)

// SavedLocation - a place a driver keeps for later, with the company wiki note
// and the PPE requirements of the site
type SavedLocation struct {
	ID           string       `json:"id" bson:"_id"`
	UserID       string       `json:"user_id" bson:"user_id"`
	Name         string       `json:"name" bson:"name"`
	Location     Coordinate   `json:"location" bson:"location"`
	Type         LocationType `json:"type" bson:"type"`
	Description  string       `json:"description" bson:"description"`
	Requirements string       `json:"requirements" bson:"requirements"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

// Validate checks the fields a client is allowed to set. Coordinates are
// checked by the caller.
func (l *SavedLocation) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrLocationNameRequired
	}
	if !l.Type.IsValid() {
		return eris.Wrapf(ErrLocationTypeInvalid, "type=%q", l.Type)
	}
	return nil
}
