package domain

// Coordinate - a WGS84 point in degrees
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat" bson:"lat"`
	Lon float64 `json:"lon" db:"lon" bson:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Contains reports whether c lies inside the box, edges included
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// UserIdentity - the signed-in user an operation is performed for
type UserIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// IsAnonymous reports whether no user is signed in
func (u UserIdentity) IsAnonymous() bool {
	return u.ID == ""
}
