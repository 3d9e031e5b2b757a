package domain

import (
	"fmt"
	"time"
)

// Stream and channel names
const (
	StreamOccupancyReported = "stream:occupancy:reported"

	ChannelParkingChanges = "changes:parking"
	channelRoutePrefix    = "changes:routes:"
	channelLocationPrefix = "changes:locations:"
)

// RouteChannel returns the change-feed channel of one user's saved routes
func RouteChannel(userID string) string {
	return fmt.Sprintf("%s%s", channelRoutePrefix, userID)
}

// LocationChannel returns the change-feed channel of one user's saved locations
func LocationChannel(userID string) string {
	return fmt.Sprintf("%s%s", channelLocationPrefix, userID)
}

// ReviewChannel returns the change-feed channel of one spot's reviews
func ReviewChannel(spotID string) string {
	return fmt.Sprintf("%s:%s:reviews", ChannelParkingChanges, spotID)
}

type ChangeKind string

const (
	ChangeOccupancy ChangeKind = "occupancy"
	ChangeReview    ChangeKind = "review"
	ChangeExpired   ChangeKind = "expired"
	ChangeSaved     ChangeKind = "saved"
	ChangeDeleted   ChangeKind = "deleted"
)

// ParkingChangeEvent - published whenever a spot's occupancy or ratings change
type ParkingChangeEvent struct {
	SpotID string          `json:"spot_id"`
	Kind   ChangeKind      `json:"kind"`
	Status OccupancyStatus `json:"status,omitempty"`
	At     time.Time       `json:"at"`
}

// RouteChangeEvent - published when a user's saved routes change
type RouteChangeEvent struct {
	UserID  string     `json:"user_id"`
	RouteID string     `json:"route_id"`
	Kind    ChangeKind `json:"kind"`
	At      time.Time  `json:"at"`
}

// LocationChangeEvent - published when a user's saved locations change
type LocationChangeEvent struct {
	UserID     string     `json:"user_id"`
	LocationID string     `json:"location_id"`
	Kind       ChangeKind `json:"kind"`
	At         time.Time  `json:"at"`
}

// OccupancyReportedEvent - stream entry consumed by the broadcast worker
type OccupancyReportedEvent struct {
	ReportID  string          `json:"report_id"`
	SpotID    string          `json:"spot_id"`
	Status    OccupancyStatus `json:"status"`
	UserName  string          `json:"user_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// IsBroadcastable reports whether the event carries enough to be announced
func (e *OccupancyReportedEvent) IsBroadcastable() bool {
	return e.SpotID != "" && e.Status.IsValid()
}

// StreamMessage - one entry read from a Redis stream
type StreamMessage struct {
	ID   string
	Data string
}
