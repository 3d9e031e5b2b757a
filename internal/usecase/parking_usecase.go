package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/geo"
	"github.com/truckershub-backend/internal/usecase/dto"
)

type ParkingUseCase struct {
	spotRepo   repository.ParkingSpotRepository
	reviewRepo repository.ReviewRepository
	reportRepo repository.OccupancyReportRepository
	statsRepo  repository.UserStatsRepository
	feed       repository.ChangeFeed
	streams    repository.StreamRepository
	reportTTL  time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func NewParkingUseCase(
	spotRepo repository.ParkingSpotRepository,
	reviewRepo repository.ReviewRepository,
	reportRepo repository.OccupancyReportRepository,
	statsRepo repository.UserStatsRepository,
	feed repository.ChangeFeed,
	streams repository.StreamRepository,
	reportTTL time.Duration,
	logger *zap.Logger,
) *ParkingUseCase {
	if reportTTL <= 0 {
		reportTTL = domain.OccupancyReportTTL
	}
	return &ParkingUseCase{
		spotRepo:   spotRepo,
		reviewRepo: reviewRepo,
		reportRepo: reportRepo,
		statsRepo:  statsRepo,
		feed:       feed,
		streams:    streams,
		reportTTL:  reportTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Nearby returns the spots within radiusKm of center, nearest first.
// A radius of zero or less returns the whole collection.
func (uc *ParkingUseCase) Nearby(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]*domain.ParkingSpot, error) {
	if !geo.ValidateCoordinates(center) {
		return nil, errors.ErrInvalidCoordinates
	}

	if radiusKm <= 0 {
		spots, err := uc.spotRepo.ListAll(ctx)
		if err != nil {
			uc.logger.Error("Failed to list parking spots", zap.Error(err))
			return nil, err
		}
		return spots, nil
	}

	if !geo.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	spots, err := uc.spotRepo.ListInBounds(ctx, geo.BoundsAround(center, radiusKm))
	if err != nil {
		uc.logger.Error("Failed to list parking spots in bounds",
			zap.Float64("lat", center.Lat),
			zap.Float64("lon", center.Lon),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err),
		)
		return nil, err
	}

	return geo.FilterWithinRadius(spots, center, radiusKm), nil
}

// ObserveNearby emits the nearby spots now and again after every parking change
func (uc *ParkingUseCase) ObserveNearby(ctx context.Context, center domain.Coordinate, radiusKm float64) (*Subscription[[]*domain.ParkingSpot], error) {
	if !geo.ValidateCoordinates(center) {
		return nil, errors.ErrInvalidCoordinates
	}
	if radiusKm > 0 && !geo.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	return observe(ctx, uc.feed, domain.ChannelParkingChanges,
		func(ctx context.Context) ([]*domain.ParkingSpot, error) {
			return uc.Nearby(ctx, center, radiusKm)
		},
		uc.logger,
	)
}

// GetByID returns nil, nil when the spot does not exist
func (uc *ParkingUseCase) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	spot, err := uc.spotRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get parking spot", zap.String("spot_id", id), zap.Error(err))
		return nil, err
	}
	return spot, nil
}

// GetDetails loads a spot with its reviews and live reports
func (uc *ParkingUseCase) GetDetails(ctx context.Context, id string) (*dto.ParkingDetails, error) {
	var (
		spot    *domain.ParkingSpot
		reviews []*domain.Review
		reports []*domain.OccupancyReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spot, err = uc.spotRepo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = uc.reviewRepo.ListBySpot(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = uc.reportRepo.ListActiveBySpot(gctx, id, uc.now())
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to load parking details", zap.String("spot_id", id), zap.Error(err))
		return nil, err
	}

	if spot == nil {
		return nil, errors.ErrParkingSpotNotFound
	}

	if reviews == nil {
		reviews = []*domain.Review{}
	}
	if reports == nil {
		reports = []*domain.OccupancyReport{}
	}

	return &dto.ParkingDetails{
		Spot:          spot,
		Reviews:       reviews,
		ActiveReports: reports,
	}, nil
}

// ListReviews returns the reviews of a spot, newest first
func (uc *ParkingUseCase) ListReviews(ctx context.Context, spotID string) ([]*domain.Review, error) {
	reviews, err := uc.reviewRepo.ListBySpot(ctx, spotID)
	if err != nil {
		uc.logger.Error("Failed to list reviews", zap.String("spot_id", spotID), zap.Error(err))
		return nil, err
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

// ObserveReviews emits the reviews of a spot now and after every new review
func (uc *ParkingUseCase) ObserveReviews(ctx context.Context, spotID string) (*Subscription[[]*domain.Review], error) {
	return observe(ctx, uc.feed, domain.ReviewChannel(spotID),
		func(ctx context.Context) ([]*domain.Review, error) {
			return uc.ListReviews(ctx, spotID)
		},
		uc.logger,
	)
}

// SubmitReview appends the review and recomputes the spot's ratings from all of its reviews.
// Nothing is written when a rating is out of range.
func (uc *ParkingUseCase) SubmitReview(ctx context.Context, user domain.UserIdentity, review *domain.Review) (*domain.Review, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	if err := review.Validate(); err != nil {
		return nil, errors.ErrInvalidReview.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	spot, err := uc.GetByID(ctx, review.ParkingSpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.ErrParkingSpotNotFound
	}

	review.ID = uuid.New().String()
	review.UserID = user.ID
	review.UserName = user.DisplayName
	review.CreatedAt = uc.now()

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		uc.logger.Error("Failed to create review", zap.String("spot_id", spot.ID), zap.Error(err))
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListBySpot(ctx, spot.ID)
	if err != nil {
		uc.logger.Error("Failed to reload reviews", zap.String("spot_id", spot.ID), zap.Error(err))
		return nil, err
	}

	if err := uc.spotRepo.UpdateRatings(ctx, spot.ID, domain.AggregateRatings(reviews)); err != nil {
		uc.logger.Error("Failed to update ratings", zap.String("spot_id", spot.ID), zap.Error(err))
		return nil, err
	}

	at := uc.now()
	uc.publish(ctx, domain.ChannelParkingChanges, domain.ParkingChangeEvent{SpotID: spot.ID, Kind: domain.ChangeReview, At: at})
	uc.publish(ctx, domain.ReviewChannel(spot.ID), domain.ParkingChangeEvent{SpotID: spot.ID, Kind: domain.ChangeReview, At: at})
	uc.countContribution(ctx, user.ID, domain.StatsDelta{TotalRatings: 1})

	uc.logger.Info("Review submitted",
		zap.String("spot_id", spot.ID),
		zap.String("review_id", review.ID),
		zap.Int("total_reviews", len(reviews)),
	)

	return review, nil
}

// ReportOccupancy records the report and overwrites the spot's current status.
// The latest report wins regardless of what it replaces.
func (uc *ParkingUseCase) ReportOccupancy(
	ctx context.Context,
	spotID string,
	user domain.UserIdentity,
	status domain.OccupancyStatus,
	comment string,
) (*domain.OccupancyReport, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}
	if !status.IsValid() {
		return nil, errors.ErrInvalidOccupancyStatus
	}

	spot, err := uc.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.ErrParkingSpotNotFound
	}

	report := domain.NewOccupancyReport(spot.ID, user, status, comment, uc.now())
	report.ID = uuid.New().String()

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		uc.logger.Error("Failed to create occupancy report", zap.String("spot_id", spot.ID), zap.Error(err))
		return nil, err
	}

	if err := uc.spotRepo.UpdateOccupancy(ctx, spot.ID, status, report.CreatedAt); err != nil {
		uc.logger.Error("Failed to update occupancy", zap.String("spot_id", spot.ID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, domain.ChannelParkingChanges, domain.ParkingChangeEvent{
		SpotID: spot.ID,
		Kind:   domain.ChangeOccupancy,
		Status: status,
		At:     report.CreatedAt,
	})

	event := &domain.OccupancyReportedEvent{
		ReportID:  report.ID,
		SpotID:    spot.ID,
		Status:    status,
		UserName:  user.DisplayName,
		CreatedAt: report.CreatedAt,
		ExpiresAt: report.ExpiresAt,
	}
	if err := uc.streams.PublishToStream(ctx, domain.StreamOccupancyReported, event); err != nil {
		uc.logger.Warn("Failed to publish occupancy event", zap.String("spot_id", spot.ID), zap.Error(err))
	}

	uc.countContribution(ctx, user.ID, domain.StatsDelta{AmpelUpdates: 1, TotalParkings: 1})

	uc.logger.Info("Occupancy reported",
		zap.String("spot_id", spot.ID),
		zap.String("status", string(status)),
	)

	return report, nil
}

// ExpireStaleOccupancy reverts to UNKNOWN every spot whose last report is older than the report TTL
func (uc *ParkingUseCase) ExpireStaleOccupancy(ctx context.Context, now time.Time) ([]string, error) {
	ids, err := uc.spotRepo.ExpireOccupancy(ctx, now.Add(-uc.reportTTL))
	if err != nil {
		uc.logger.Error("Failed to expire occupancy", zap.Error(err))
		return nil, err
	}

	for _, id := range ids {
		uc.publish(ctx, domain.ChannelParkingChanges, domain.ParkingChangeEvent{
			SpotID: id,
			Kind:   domain.ChangeExpired,
			Status: domain.OccupancyUnknown,
			At:     now,
		})

		event := &domain.OccupancyReportedEvent{
			SpotID:    id,
			Status:    domain.OccupancyUnknown,
			CreatedAt: now,
		}
		if err := uc.streams.PublishToStream(ctx, domain.StreamOccupancyReported, event); err != nil {
			uc.logger.Warn("Failed to publish expiry event", zap.String("spot_id", id), zap.Error(err))
		}
	}

	if len(ids) > 0 {
		uc.logger.Info("Expired stale occupancy", zap.Int("spots", len(ids)))
	}

	return ids, nil
}

// Stats returns the user's contribution counters
func (uc *ParkingUseCase) Stats(ctx context.Context, user domain.UserIdentity) (*domain.UserStats, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}
	if uc.statsRepo == nil {
		return &domain.UserStats{UserID: user.ID}, nil
	}
	return uc.statsRepo.GetByUserID(ctx, user.ID)
}

// countContribution bumps the user's counters. The contribution itself
// already succeeded, so a failure is only logged.
func (uc *ParkingUseCase) countContribution(ctx context.Context, userID string, delta domain.StatsDelta) {
	if uc.statsRepo == nil {
		return
	}
	if err := uc.statsRepo.Increment(ctx, userID, delta); err != nil {
		uc.logger.Warn("Failed to update user stats", zap.String("user_id", userID), zap.Error(err))
	}
}

// publish logs and drops change-feed failures
func (uc *ParkingUseCase) publish(ctx context.Context, channel string, event interface{}) {
	if err := uc.feed.Publish(ctx, channel, event); err != nil {
		uc.logger.Warn("Failed to publish change", zap.String("channel", channel), zap.Error(err))
	}
}
