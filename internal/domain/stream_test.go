package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOccupancyReportedEvent_IsBroadcastable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		event       OccupancyReportedEvent
		expected    bool
		description string
	}{
		{
			name: "spot and known status",
			event: OccupancyReportedEvent{
				ReportID:  uuid.NewString(),
				SpotID:    uuid.NewString(),
				Status:    OccupancyRed,
				CreatedAt: now,
				ExpiresAt: now.Add(OccupancyReportTTL),
			},
			expected:    true,
			description: "Should return true when spot id and status are set",
		},
		{
			name: "unknown status is still a status",
			event: OccupancyReportedEvent{
				SpotID: uuid.NewString(),
				Status: OccupancyUnknown,
			},
			expected:    true,
			description: "UNKNOWN is announced after expiry reversion",
		},
		{
			name: "missing spot id",
			event: OccupancyReportedEvent{
				Status: OccupancyGreen,
			},
			expected:    false,
			description: "Should return false without spot id",
		},
		{
			name: "garbage status",
			event: OccupancyReportedEvent{
				SpotID: uuid.NewString(),
				Status: OccupancyStatus("BLUE"),
			},
			expected:    false,
			description: "Should return false for a status outside the enumeration",
		},
		{
			name:        "empty event",
			event:       OccupancyReportedEvent{},
			expected:    false,
			description: "Should return false when nothing is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.event.IsBroadcastable()
			assert.Equal(t, tt.expected, result, tt.description)
		})
	}
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "changes:routes:user-1", RouteChannel("user-1"))
	assert.Equal(t, "changes:parking:spot-9:reviews", ReviewChannel("spot-9"))
	assert.Equal(t, "changes:locations:user-1", LocationChannel("user-1"))
}
