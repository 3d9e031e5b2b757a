package domain

import "time"

// UserStats - running counters of a driver's contributions
type UserStats struct {
	UserID        string    `json:"user_id" bson:"_id"`
	AmpelUpdates  int64     `json:"ampel_updates" bson:"ampel_updates"`
	TotalParkings int64     `json:"total_parkings" bson:"total_parkings"`
	TotalRatings  int64     `json:"total_ratings" bson:"total_ratings"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// StatsDelta - amounts added to the counters in one increment
type StatsDelta struct {
	AmpelUpdates  int64
	TotalParkings int64
	TotalRatings  int64
}

// IsZero reports whether applying d would change nothing
func (d StatsDelta) IsZero() bool {
	return d.AmpelUpdates == 0 && d.TotalParkings == 0 && d.TotalRatings == 0
}
