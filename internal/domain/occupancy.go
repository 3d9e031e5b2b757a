package domain

import "time"

// OccupancyReportTTL - how long a report stays authoritative
const OccupancyReportTTL = 30 * time.Minute

// OccupancyReport - one driver's observation of how full a spot is
type OccupancyReport struct {
	ID            string          `json:"id" db:"id"`
	ParkingSpotID string          `json:"parking_spot_id" db:"parking_spot_id"`
	UserID        string          `json:"user_id" db:"user_id"`
	UserName      string          `json:"user_name" db:"user_name"`
	Status        OccupancyStatus `json:"status" db:"status"`
	Comment       string          `json:"comment" db:"comment"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at" db:"expires_at"`
}

// NewOccupancyReport stamps the report with createdAt and its expiry
func NewOccupancyReport(spotID string, user UserIdentity, status OccupancyStatus, comment string, createdAt time.Time) *OccupancyReport {
	return &OccupancyReport{
		ParkingSpotID: spotID,
		UserID:        user.ID,
		UserName:      user.DisplayName,
		Status:        status,
		Comment:       comment,
		CreatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(OccupancyReportTTL),
	}
}

// IsExpired reports whether the report is stale at now
func (r *OccupancyReport) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
