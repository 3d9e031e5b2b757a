package mongo

import (
	"context"

	"github.com/google/uuid"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultCheckLimit = 20

type departureCheckRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewDepartureCheckRepository(c *Client) repository.DepartureCheckRepository {
	return &departureCheckRepository{
		coll:   c.db.Collection(CollectionDepartureChecks),
		logger: c.logger,
	}
}

func (r *departureCheckRepository) Create(ctx context.Context, check *domain.DepartureCheck) error {
	if check.ID == "" {
		check.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, check); err != nil {
		r.logger.Error("Failed to store departure check", zap.String("user_id", check.UserID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *departureCheckRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.DepartureCheck, error) {
	if limit <= 0 {
		limit = defaultCheckLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.logger.Error("Failed to list departure checks", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer cursor.Close(ctx)

	checks := []*domain.DepartureCheck{}
	if err := cursor.All(ctx, &checks); err != nil {
		r.logger.Error("Failed to decode departure checks", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return checks, nil
}
