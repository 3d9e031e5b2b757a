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

type routeRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewRouteRepository(c *Client) repository.RouteRepository {
	return &routeRepository{
		coll:   c.db.Collection(CollectionRoutes),
		logger: c.logger,
	}
}

func (r *routeRepository) Save(ctx context.Context, route *domain.Route) error {
	now := time.Now().UTC()
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	if route.CreatedAt.IsZero() {
		route.CreatedAt = now
	}
	route.UpdatedAt = now

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": route.ID},
		route,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error("Failed to save route",
			zap.String("route_id", route.ID),
			zap.String("user_id", route.UserID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	var route domain.Route
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get route", zap.String("route_id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &route, nil
}

func (r *routeRepository) ListSaved(ctx context.Context, userID string) ([]*domain.Route, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID, "is_saved": true}, opts)
	if err != nil {
		r.logger.Error("Failed to list saved routes", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer cursor.Close(ctx)

	routes := []*domain.Route{}
	if err := cursor.All(ctx, &routes); err != nil {
		r.logger.Error("Failed to decode saved routes", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return routes, nil
}

func (r *routeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete route", zap.String("route_id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if res.DeletedCount == 0 {
		return errors.ErrRouteNotFound
	}
	return nil
}

func (r *routeRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_used": at}})
	if err != nil {
		r.logger.Error("Failed to touch route", zap.String("route_id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if res.MatchedCount == 0 {
		return errors.ErrRouteNotFound
	}
	return nil
}
