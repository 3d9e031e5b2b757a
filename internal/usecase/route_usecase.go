package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/geo"
	"github.com/truckershub-backend/internal/pkg/polyline"
	"github.com/truckershub-backend/internal/usecase/dto"
)

type RouteUseCase struct {
	provider  repository.RouteProvider
	routeRepo repository.RouteRepository
	cacheRepo repository.CacheRepository
	feed      repository.ChangeFeed
	fuel      config.FuelConfig
	cacheTTL  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewRouteUseCase(
	provider repository.RouteProvider,
	routeRepo repository.RouteRepository,
	cacheRepo repository.CacheRepository,
	feed repository.ChangeFeed,
	fuel config.FuelConfig,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		provider:  provider,
		routeRepo: routeRepo,
		cacheRepo: cacheRepo,
		feed:      feed,
		fuel:      fuel,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		logger:    logger,
	}
}

// Calculate asks the routing provider for a truck route. The result is not saved.
func (uc *RouteUseCase) Calculate(ctx context.Context, user domain.UserIdentity, req dto.CalculateRouteRequest) (*domain.Route, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	if !req.Truck.IsValid() {
		return nil, errors.ErrInvalidTruckProfile
	}

	start := req.Start.ToRoutePoint()
	end := req.End.ToRoutePoint()
	waypoints := make([]domain.RoutePoint, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		waypoints = append(waypoints, wp.ToRoutePoint())
	}

	points := make([]domain.Coordinate, 0, len(waypoints)+2)
	points = append(points, start.Location)
	for _, wp := range waypoints {
		points = append(points, wp.Location)
	}
	points = append(points, end.Location)

	for _, p := range points {
		if !geo.ValidateCoordinates(p) {
			return nil, errors.ErrInvalidCoordinates
		}
	}

	routeReq := domain.RouteRequest{
		Points:  points,
		Profile: req.Profile,
		Locale:  req.Locale,
		Truck:   req.Truck,
	}

	result, err := uc.calculate(ctx, routeReq)
	if err != nil {
		return nil, err
	}

	// the provider snaps start and end to the road network
	if path, err := polyline.Decode(result.Points); err == nil && len(path) > 0 {
		start.Location = path[0]
		end.Location = path[len(path)-1]
	} else if err != nil {
		uc.logger.Warn("Provider returned an unreadable polyline", zap.Error(err))
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%s - %s", pointLabel(start), pointLabel(end))
	}

	now := uc.now()
	route := &domain.Route{
		UserID:       user.ID,
		Name:         name,
		StartPoint:   start,
		EndPoint:     end,
		Waypoints:    waypoints,
		TruckProfile: req.Truck,
		Details: domain.RouteDetails{
			DistanceMeters:  result.DistanceMeters,
			DurationSeconds: result.DurationMillis / 1000,
			Points:          result.Points,
			Instructions:    result.Instructions,
			Ascent:          result.Ascent,
			Descent:         result.Descent,
		},
		EstimatedFuelCost: uc.fuelCost(result.DistanceMeters),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	uc.logger.Info("Route calculated",
		zap.String("user_id", user.ID),
		zap.String("provider", uc.provider.Name()),
		zap.Float64("distance_m", result.DistanceMeters),
		zap.Int("waypoints", len(waypoints)),
	)

	return route, nil
}

// calculate serves repeated requests from the cache
func (uc *RouteUseCase) calculate(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	key, err := routeCacheKey(uc.provider.Name(), req)
	if err != nil {
		uc.logger.Warn("Failed to build route cache key", zap.Error(err))
	}

	if key != "" {
		cached, err := uc.cacheRepo.GetRouteResult(ctx, key)
		if err != nil {
			uc.logger.Warn("Route cache read failed", zap.Error(err))
		} else if cached != nil {
			uc.logger.Debug("Route cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	result, err := uc.provider.CalculateRoute(ctx, req)
	if err != nil {
		if eris.Is(err, domain.ErrNoRoute) {
			return nil, errors.ErrNoRouteFound
		}
		uc.logger.Error("Route calculation failed",
			zap.String("provider", uc.provider.Name()),
			zap.Error(err),
		)
		return nil, errors.ErrRoutingUnavailable
	}

	if key != "" && uc.cacheTTL > 0 {
		if err := uc.cacheRepo.SetRouteResult(ctx, key, result, uc.cacheTTL); err != nil {
			uc.logger.Warn("Route cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

// fuelCost - liters over the distance times the configured price
func (uc *RouteUseCase) fuelCost(distanceMeters float64) float64 {
	liters := distanceMeters / 1000 * uc.fuel.ConsumptionPer100Km / 100
	return liters * uc.fuel.PricePerLiter
}

// Save stores the route under the user. Routes of other users cannot be overwritten.
func (uc *RouteUseCase) Save(ctx context.Context, user domain.UserIdentity, route *domain.Route) (*domain.Route, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	if route.ID != "" {
		existing, err := uc.routeRepo.GetByID(ctx, route.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.UserID != user.ID {
			return nil, errors.ErrRouteNotFound
		}
	}

	route.UserID = user.ID
	route.IsSaved = true
	route.UpdatedAt = uc.now()

	if err := uc.routeRepo.Save(ctx, route); err != nil {
		uc.logger.Error("Failed to save route", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, user.ID, route.ID, domain.ChangeSaved)

	return route, nil
}

// GetByID returns the user's route and records that it was opened
func (uc *RouteUseCase) GetByID(ctx context.Context, user domain.UserIdentity, id string) (*domain.Route, error) {
	route, err := uc.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	at := uc.now()
	if err := uc.routeRepo.TouchLastUsed(ctx, id, at); err != nil {
		uc.logger.Warn("Failed to record route use", zap.String("route_id", id), zap.Error(err))
	} else {
		route.LastUsed = &at
	}

	return route, nil
}

func (uc *RouteUseCase) ListSaved(ctx context.Context, user domain.UserIdentity) ([]*domain.Route, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	routes, err := uc.routeRepo.ListSaved(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []*domain.Route{}
	}
	return routes, nil
}

// ObserveSaved emits the user's saved routes now and after every save or delete
func (uc *RouteUseCase) ObserveSaved(ctx context.Context, user domain.UserIdentity) (*Subscription[[]*domain.Route], error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	return observe(ctx, uc.feed, domain.RouteChannel(user.ID),
		func(ctx context.Context) ([]*domain.Route, error) {
			return uc.ListSaved(ctx, user)
		},
		uc.logger,
	)
}

func (uc *RouteUseCase) Delete(ctx context.Context, user domain.UserIdentity, id string) error {
	if _, err := uc.owned(ctx, user, id); err != nil {
		return err
	}

	if err := uc.routeRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, user.ID, id, domain.ChangeDeleted)
	return nil
}

// ExportGeoJSON renders the route path as a GeoJSON LineString feature
func (uc *RouteUseCase) ExportGeoJSON(ctx context.Context, user domain.UserIdentity, id string) ([]byte, error) {
	route, err := uc.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	path, err := polyline.Decode(route.Details.Points)
	if err != nil {
		uc.logger.Error("Stored route has a malformed polyline", zap.String("route_id", id), zap.Error(err))
		return nil, errors.ErrInvalidPolyline
	}

	return geo.PathToGeoJSON(route.ID, path, map[string]interface{}{
		"name":             route.Name,
		"distance_meters":  route.Details.DistanceMeters,
		"duration_seconds": route.Details.DurationSeconds,
		"distance":         route.FormattedDistance(),
		"duration":         route.FormattedDuration(),
	})
}

// owned hides routes of other users behind ROUTE_NOT_FOUND
func (uc *RouteUseCase) owned(ctx context.Context, user domain.UserIdentity, id string) (*domain.Route, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	route, err := uc.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil || route.UserID != user.ID {
		return nil, errors.ErrRouteNotFound
	}
	return route, nil
}

func (uc *RouteUseCase) publish(ctx context.Context, userID, routeID string, kind domain.ChangeKind) {
	event := domain.RouteChangeEvent{UserID: userID, RouteID: routeID, Kind: kind, At: uc.now()}
	if err := uc.feed.Publish(ctx, domain.RouteChannel(userID), event); err != nil {
		uc.logger.Warn("Failed to publish route change", zap.String("route_id", routeID), zap.Error(err))
	}
}

func routeCacheKey(provider string, req domain.RouteRequest) (string, error) {
	payload, err := json.Marshal(struct {
		Provider string
		Request  domain.RouteRequest
	}{provider, req})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func pointLabel(p domain.RoutePoint) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%.4f,%.4f", p.Location.Lat, p.Location.Lon)
}
