package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type locationRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewLocationRepository(c *Client) repository.LocationRepository {
	return &locationRepository{
		coll:   c.db.Collection(CollectionLocations),
		logger: c.logger,
	}
}

func (r *locationRepository) Save(ctx context.Context, location *domain.SavedLocation) error {
	now := time.Now().UTC()
	if location.ID == "" {
		location.ID = uuid.NewString()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = now
	}
	location.UpdatedAt = now

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": location.ID},
		location,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error("Failed to save location",
			zap.String("location_id", location.ID),
			zap.String("user_id", location.UserID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*domain.SavedLocation, error) {
	var location domain.SavedLocation
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get location", zap.String("location_id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &location, nil
}

func (r *locationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedLocation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.logger.Error("Failed to list locations", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer cursor.Close(ctx)

	locations := []*domain.SavedLocation{}
	if err := cursor.All(ctx, &locations); err != nil {
		r.logger.Error("Failed to decode locations", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return locations, nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete location", zap.String("location_id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if res.DeletedCount == 0 {
		return errors.ErrLocationNotFound
	}
	return nil
}
