package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

const spotColumns = `
	id, name, address, country, description, lat, lon, category,
	has_toilet, has_shower, has_restaurant, has_shop, has_wifi, has_fuel,
	is_paid, price_per_night, truck_capacity, current_ampel, last_ampel_update,
	rating_overall, rating_cleanliness, rating_safety, rating_facilities,
	rating_food_quality, rating_price_value, total_reviews,
	reported_by, created_at, updated_at`

// spotRow is the flat table shape of a parking spot
type spotRow struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Address         string     `db:"address"`
	Country         string     `db:"country"`
	Description     string     `db:"description"`
	Lat             float64    `db:"lat"`
	Lon             float64    `db:"lon"`
	Category        string     `db:"category"`
	HasToilet       bool       `db:"has_toilet"`
	HasShower       bool       `db:"has_shower"`
	HasRestaurant   bool       `db:"has_restaurant"`
	HasShop         bool       `db:"has_shop"`
	HasWifi         bool       `db:"has_wifi"`
	HasFuel         bool       `db:"has_fuel"`
	IsPaid          bool       `db:"is_paid"`
	PricePerNight   float64    `db:"price_per_night"`
	TruckCapacity   int        `db:"truck_capacity"`
	CurrentAmpel    string     `db:"current_ampel"`
	LastAmpelUpdate *time.Time `db:"last_ampel_update"`
	RatingOverall   float64    `db:"rating_overall"`
	RatingClean     float64    `db:"rating_cleanliness"`
	RatingSafety    float64    `db:"rating_safety"`
	RatingFacil     float64    `db:"rating_facilities"`
	RatingFood      float64    `db:"rating_food_quality"`
	RatingPrice     float64    `db:"rating_price_value"`
	TotalReviews    int        `db:"total_reviews"`
	ReportedBy      string     `db:"reported_by"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r *spotRow) toDomain() *domain.ParkingSpot {
	return &domain.ParkingSpot{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Country:     r.Country,
		Description: r.Description,
		Location:    domain.Coordinate{Lat: r.Lat, Lon: r.Lon},
		Category:    domain.ParkingCategory(r.Category),
		Facilities: domain.Facilities{
			Toilet:     r.HasToilet,
			Shower:     r.HasShower,
			Restaurant: r.HasRestaurant,
			Shop:       r.HasShop,
			Wifi:       r.HasWifi,
			Fuel:       r.HasFuel,
		},
		IsPaid:          r.IsPaid,
		PricePerNight:   r.PricePerNight,
		TruckCapacity:   r.TruckCapacity,
		CurrentAmpel:    domain.OccupancyStatus(r.CurrentAmpel),
		LastAmpelUpdate: r.LastAmpelUpdate,
		Ratings: domain.ParkingRatings{
			Overall:      r.RatingOverall,
			Cleanliness:  r.RatingClean,
			Safety:       r.RatingSafety,
			Facilities:   r.RatingFacil,
			FoodQuality:  r.RatingFood,
			PriceValue:   r.RatingPrice,
			TotalReviews: r.TotalReviews,
		},
		ReportedBy: r.ReportedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func spotRowFrom(s *domain.ParkingSpot) spotRow {
	return spotRow{
		ID:              s.ID,
		Name:            s.Name,
		Address:         s.Address,
		Country:         s.Country,
		Description:     s.Description,
		Lat:             s.Location.Lat,
		Lon:             s.Location.Lon,
		Category:        string(s.Category),
		HasToilet:       s.Facilities.Toilet,
		HasShower:       s.Facilities.Shower,
		HasRestaurant:   s.Facilities.Restaurant,
		HasShop:         s.Facilities.Shop,
		HasWifi:         s.Facilities.Wifi,
		HasFuel:         s.Facilities.Fuel,
		IsPaid:          s.IsPaid,
		PricePerNight:   s.PricePerNight,
		TruckCapacity:   s.TruckCapacity,
		CurrentAmpel:    string(s.CurrentAmpel),
		LastAmpelUpdate: s.LastAmpelUpdate,
		RatingOverall:   s.Ratings.Overall,
		RatingClean:     s.Ratings.Cleanliness,
		RatingSafety:    s.Ratings.Safety,
		RatingFacil:     s.Ratings.Facilities,
		RatingFood:      s.Ratings.FoodQuality,
		RatingPrice:     s.Ratings.PriceValue,
		TotalReviews:    s.Ratings.TotalReviews,
		ReportedBy:      s.ReportedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func rowsToSpots(rows []spotRow) []*domain.ParkingSpot {
	spots := make([]*domain.ParkingSpot, 0, len(rows))
	for i := range rows {
		spots = append(spots, rows[i].toDomain())
	}
	return spots
}

type parkingSpotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewParkingSpotRepository(db *DB) repository.ParkingSpotRepository {
	return &parkingSpotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *parkingSpotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	// ids are UUIDs; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var row spotRow
	err := r.db.GetContext(ctx, &row, `SELECT `+spotColumns+` FROM parking_spots WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get parking spot by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *parkingSpotRepository) ListInBounds(ctx context.Context, box domain.BoundingBox) ([]*domain.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + `
		FROM parking_spots
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4`

	var rows []spotRow
	if err := r.db.SelectContext(ctx, &rows, query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon); err != nil {
		r.logger.Error("Failed to list parking spots in bounds",
			zap.Float64("min_lat", box.MinLat),
			zap.Float64("min_lon", box.MinLon),
			zap.Float64("max_lat", box.MaxLat),
			zap.Float64("max_lon", box.MaxLon),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return rowsToSpots(rows), nil
}

func (r *parkingSpotRepository) ListAll(ctx context.Context) ([]*domain.ParkingSpot, error) {
	var rows []spotRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+spotColumns+` FROM parking_spots ORDER BY name`); err != nil {
		r.logger.Error("Failed to list parking spots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return rowsToSpots(rows), nil
}

func (r *parkingSpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) error {
	if spot.ID == "" {
		spot.ID = uuid.NewString()
	}
	if spot.CurrentAmpel == "" {
		spot.CurrentAmpel = domain.OccupancyUnknown
	}
	now := time.Now().UTC()
	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = now
	}
	spot.UpdatedAt = now

	query := `
		INSERT INTO parking_spots (
			id, name, address, country, description, lat, lon, category,
			has_toilet, has_shower, has_restaurant, has_shop, has_wifi, has_fuel,
			is_paid, price_per_night, truck_capacity, current_ampel, last_ampel_update,
			rating_overall, rating_cleanliness, rating_safety, rating_facilities,
			rating_food_quality, rating_price_value, total_reviews,
			reported_by, created_at, updated_at
		) VALUES (
			:id, :name, :address, :country, :description, :lat, :lon, :category,
			:has_toilet, :has_shower, :has_restaurant, :has_shop, :has_wifi, :has_fuel,
			:is_paid, :price_per_night, :truck_capacity, :current_ampel, :last_ampel_update,
			:rating_overall, :rating_cleanliness, :rating_safety, :rating_facilities,
			:rating_food_quality, :rating_price_value, :total_reviews,
			:reported_by, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, spotRowFrom(spot)); err != nil {
		r.logger.Error("Failed to create parking spot", zap.String("name", spot.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *parkingSpotRepository) UpdateOccupancy(
	ctx context.Context,
	spotID string,
	status domain.OccupancyStatus,
	at time.Time,
) error {
	if _, err := uuid.Parse(spotID); err != nil {
		return errors.ErrParkingSpotNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE parking_spots
		SET current_ampel = $2, last_ampel_update = $3, updated_at = NOW()
		WHERE id = $1`,
		spotID, string(status), at,
	)
	if err != nil {
		r.logger.Error("Failed to update occupancy", zap.String("spot_id", spotID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return r.requireAffected(res, spotID)
}

func (r *parkingSpotRepository) UpdateRatings(ctx context.Context, spotID string, ratings domain.ParkingRatings) error {
	if _, err := uuid.Parse(spotID); err != nil {
		return errors.ErrParkingSpotNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE parking_spots
		SET rating_overall = $2,
		    rating_cleanliness = $3,
		    rating_safety = $4,
		    rating_facilities = $5,
		    rating_food_quality = $6,
		    rating_price_value = $7,
		    total_reviews = $8,
		    updated_at = NOW()
		WHERE id = $1`,
		spotID,
		ratings.Overall, ratings.Cleanliness, ratings.Safety,
		ratings.Facilities, ratings.FoodQuality, ratings.PriceValue,
		ratings.TotalReviews,
	)
	if err != nil {
		r.logger.Error("Failed to update ratings", zap.String("spot_id", spotID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return r.requireAffected(res, spotID)
}

func (r *parkingSpotRepository) ExpireOccupancy(ctx context.Context, olderThan time.Time) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `
		UPDATE parking_spots
		SET current_ampel = 'UNKNOWN', updated_at = NOW()
		WHERE current_ampel <> 'UNKNOWN'
		  AND (last_ampel_update IS NULL OR last_ampel_update < $1)
		RETURNING id`,
		olderThan,
	)
	if err != nil {
		r.logger.Error("Failed to expire occupancy", zap.Time("older_than", olderThan), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return ids, nil
}

func (r *parkingSpotRepository) requireAffected(res sql.Result, spotID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.String("spot_id", spotID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if n == 0 {
		return errors.ErrParkingSpotNotFound
	}
	return nil
}
