package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/delivery/http/middleware"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/utils"
	"github.com/truckershub-backend/internal/pkg/validator"
	"github.com/truckershub-backend/internal/usecase/dto"
	"github.com/truckershub-backend/internal/viewstate"
)

type ParkingHandler struct {
	parking ParkingService
	logger  *zap.Logger
}

func NewParkingHandler(parking ParkingService, logger *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		parking: parking,
		logger:  logger,
	}
}

func parseNearby(c *fiber.Ctx) (dto.NearbyRequest, error) {
	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return req, errors.ErrInvalidRequest
	}
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return req, errors.ErrInvalidCoordinates
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// Nearby godoc
// @Summary Parking spots around a point
// @Description Spots within radius_km, nearest first. Without radius the whole collection is returned.
// @Tags Parking
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Radius in km (0.1 - 500)"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/parking/nearby [get]
func (h *ParkingHandler) Nearby(c *fiber.Ctx) error {
	req, err := parseNearby(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	center := domain.Coordinate{Lat: req.Lat, Lon: req.Lon}
	spots, err := h.parking.Nearby(c.UserContext(), center, req.RadiusKm)
	if err != nil {
		return utils.SendError(c, err)
	}

	result := dto.NewNearbyResponse(spots, center)
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// NearbyStream godoc
// @Summary Live parking spots around a point
// @Description Server-Sent Events; one "parking" event per change with the full view state
// @Tags Parking
// @Produce text/event-stream
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Radius in km"
// @Router /api/v1/parking/nearby/stream [get]
func (h *ParkingHandler) NearbyStream(c *fiber.Ctx) error {
	req, err := parseNearby(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	ctx, cancel := streamContext()
	sub, err := h.parking.ObserveNearby(ctx, domain.Coordinate{Lat: req.Lat, Lon: req.Lon}, req.RadiusKm)
	if err != nil {
		cancel()
		return utils.SendError(c, err)
	}

	holder := viewstate.NewParkingHolder()
	holder.SetLoading(true)
	go viewstate.BindParking(ctx, holder, sub)

	return sendEvents(c, "parking", holder.Updates(), func() {
		holder.Close()
		cancel()
	}, h.logger)
}

// GetDetails godoc
// @Summary Parking spot with reviews and live occupancy reports
// @Tags Parking
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkingDetails}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/parking/{id} [get]
func (h *ParkingHandler) GetDetails(c *fiber.Ctx) error {
	details, err := h.parking.GetDetails(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, details, nil)
}

// ListReviews godoc
// @Summary Reviews of a spot, newest first
// @Tags Parking
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Review}
// @Router /api/v1/parking/{id}/reviews [get]
func (h *ParkingHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.parking.ListReviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, reviews)
}

// ReviewStream godoc
// @Summary Live reviews of a spot
// @Description The first event carries the selected spot; later events replace its reviews
// @Tags Parking
// @Produce text/event-stream
// @Param id path string true "Spot ID"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/parking/{id}/reviews/stream [get]
func (h *ParkingHandler) ReviewStream(c *fiber.Ctx) error {
	spot, err := h.parking.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	if spot == nil {
		return utils.SendError(c, errors.ErrParkingSpotNotFound)
	}

	ctx, cancel := streamContext()
	sub, err := h.parking.ObserveReviews(ctx, spot.ID)
	if err != nil {
		cancel()
		return utils.SendError(c, err)
	}

	holder := viewstate.NewParkingHolder()
	holder.Select(spot)
	go viewstate.BindReviews(ctx, holder, sub)

	return sendEvents(c, "reviews", holder.Updates(), func() {
		holder.Close()
		cancel()
	}, h.logger)
}

// SubmitReview godoc
// @Summary Rate a parking spot
// @Description Every rating must be between 1 and 5. The spot's aggregate ratings are recomputed.
// @Tags Parking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body dto.SubmitReviewRequest true "Review"
// @Success 201 {object} utils.SuccessResponse{data=domain.Review}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/parking/{id}/reviews [post]
func (h *ParkingHandler) SubmitReview(c *fiber.Ctx) error {
	var req dto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	review := req.ToReview()
	review.ParkingSpotID = c.Params("id")

	created, err := h.parking.SubmitReview(c.UserContext(), middleware.CurrentUser(c), review)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, created)
}

// ReportOccupancy godoc
// @Summary Report how full a spot is
// @Tags Parking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body dto.ReportOccupancyRequest true "Status GREEN, YELLOW, RED or UNKNOWN"
// @Success 201 {object} utils.SuccessResponse{data=domain.OccupancyReport}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/parking/{id}/occupancy [post]
func (h *ParkingHandler) ReportOccupancy(c *fiber.Ctx) error {
	var req dto.ReportOccupancyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if !req.Status.IsValid() {
		return utils.SendError(c, errors.ErrInvalidOccupancyStatus)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	report, err := h.parking.ReportOccupancy(c.UserContext(), c.Params("id"), middleware.CurrentUser(c), req.Status, req.Comment)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, report)
}

// Stats godoc
// @Summary Contribution counters of the signed-in user
// @Description ampel_updates and total_parkings grow with every occupancy report, total_ratings with every review.
// @Tags Parking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=domain.UserStats}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/me/stats [get]
func (h *ParkingHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.parking.Stats(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}
