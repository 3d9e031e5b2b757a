package mongo

import (
	"context"
	"time"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type userStatsRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewUserStatsRepository(c *Client) repository.UserStatsRepository {
	return &userStatsRepository{
		coll:   c.db.Collection(CollectionUserStats),
		logger: c.logger,
	}
}

// Increment is a single $inc upsert so concurrent contributions never lose counts
func (r *userStatsRepository) Increment(ctx context.Context, userID string, delta domain.StatsDelta) error {
	if delta.IsZero() {
		return nil
	}

	update := bson.M{
		"$inc": bson.M{
			"ampel_updates":  delta.AmpelUpdates,
			"total_parkings": delta.TotalParkings,
			"total_ratings":  delta.TotalRatings,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to increment user stats", zap.String("user_id", userID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *userStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	var stats domain.UserStats
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&stats)
	if err == mongo.ErrNoDocuments {
		return &domain.UserStats{UserID: userID}, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user stats", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &stats, nil
}
