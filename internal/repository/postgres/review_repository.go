package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO reviews (
			id, parking_spot_id, user_id, user_name,
			overall, cleanliness, safety, facilities, food_quality, price_value,
			comment, has_shower, has_restaurant, has_shop, has_fuel, has_wifi, has_toilet,
			created_at
		) VALUES (
			:id, :parking_spot_id, :user_id, :user_name,
			:overall, :cleanliness, :safety, :facilities, :food_quality, :price_value,
			:comment, :has_shower, :has_restaurant, :has_shop, :has_fuel, :has_wifi, :has_toilet,
			:created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		r.logger.Error("Failed to create review",
			zap.String("spot_id", review.ParkingSpotID),
			zap.String("user_id", review.UserID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *reviewRepository) ListBySpot(ctx context.Context, spotID string) ([]*domain.Review, error) {
	if _, err := uuid.Parse(spotID); err != nil {
		return []*domain.Review{}, nil
	}

	query := `
		SELECT
			id, parking_spot_id, user_id, user_name,
			overall, cleanliness, safety, facilities, food_quality, price_value,
			comment, has_shower, has_restaurant, has_shop, has_fuel, has_wifi, has_toilet,
			created_at
		FROM reviews
		WHERE parking_spot_id = $1
		ORDER BY created_at DESC, id`

	reviews := []*domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, spotID); err != nil {
		r.logger.Error("Failed to list reviews", zap.String("spot_id", spotID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return reviews, nil
}
