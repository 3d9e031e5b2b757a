package repository

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
)

// OccupancyBroadcaster announces status changes to in-cab displays
type OccupancyBroadcaster interface {
	Broadcast(ctx context.Context, event *domain.OccupancyReportedEvent) error
	Close()
}
