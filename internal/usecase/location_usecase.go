package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/geo"
)

// LocationUseCase - a driver's saved places: customers, depots, fuel stops
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	feed         repository.ChangeFeed
	now          func() time.Time
	logger       *zap.Logger
}

func NewLocationUseCase(locationRepo repository.LocationRepository, feed repository.ChangeFeed, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		locationRepo: locationRepo,
		feed:         feed,
		now:          time.Now,
		logger:       logger,
	}
}

// Save inserts or replaces a location of the user. Locations of other users
// cannot be overwritten.
func (uc *LocationUseCase) Save(ctx context.Context, user domain.UserIdentity, location *domain.SavedLocation) (*domain.SavedLocation, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	if err := location.Validate(); err != nil {
		return nil, errors.ErrInvalidLocation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	if !geo.ValidateCoordinates(location.Location) {
		return nil, errors.ErrInvalidCoordinates
	}

	if location.ID != "" {
		existing, err := uc.locationRepo.GetByID(ctx, location.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.UserID != user.ID {
				return nil, errors.ErrLocationNotFound
			}
			location.CreatedAt = existing.CreatedAt
		}
	}

	location.UserID = user.ID

	if err := uc.locationRepo.Save(ctx, location); err != nil {
		uc.logger.Error("Failed to save location", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, user.ID, location.ID, domain.ChangeSaved)

	uc.logger.Info("Location saved",
		zap.String("user_id", user.ID),
		zap.String("location_id", location.ID),
		zap.String("type", string(location.Type)),
	)

	return location, nil
}

// List returns the user's locations ordered by name
func (uc *LocationUseCase) List(ctx context.Context, user domain.UserIdentity) ([]*domain.SavedLocation, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	locations, err := uc.locationRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*domain.SavedLocation{}
	}
	return locations, nil
}

// Observe emits the user's locations now and after every save or delete
func (uc *LocationUseCase) Observe(ctx context.Context, user domain.UserIdentity) (*Subscription[[]*domain.SavedLocation], error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	return observe(ctx, uc.feed, domain.LocationChannel(user.ID),
		func(ctx context.Context) ([]*domain.SavedLocation, error) {
			return uc.List(ctx, user)
		},
		uc.logger,
	)
}

func (uc *LocationUseCase) Delete(ctx context.Context, user domain.UserIdentity, id string) error {
	if user.IsAnonymous() {
		return errors.ErrUnauthorized
	}

	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil || location.UserID != user.ID {
		return errors.ErrLocationNotFound
	}

	if err := uc.locationRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, user.ID, id, domain.ChangeDeleted)
	return nil
}

func (uc *LocationUseCase) publish(ctx context.Context, userID, locationID string, kind domain.ChangeKind) {
	event := domain.LocationChangeEvent{UserID: userID, LocationID: locationID, Kind: kind, At: uc.now()}
	if err := uc.feed.Publish(ctx, domain.LocationChannel(userID), event); err != nil {
		uc.logger.Warn("Failed to publish location change", zap.String("location_id", locationID), zap.Error(err))
	}
}
