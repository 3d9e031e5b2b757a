package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/delivery/http/middleware"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/utils"
	"github.com/truckershub-backend/internal/pkg/validator"
	"github.com/truckershub-backend/internal/usecase/dto"
	"github.com/truckershub-backend/internal/viewstate"
)

type LocationHandler struct {
	locations LocationService
	logger    *zap.Logger
}

func NewLocationHandler(locations LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locations: locations,
		logger:    logger,
	}
}

// List godoc
// @Summary Saved locations of the signed-in user, by name
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SavedLocation}
// @Router /api/v1/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.locations.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, locations)
}

// Stream godoc
// @Summary Live saved locations of the signed-in user
// @Tags Locations
// @Produce text/event-stream
// @Security BearerAuth
// @Router /api/v1/locations/stream [get]
func (h *LocationHandler) Stream(c *fiber.Ctx) error {
	ctx, cancel := streamContext()
	sub, err := h.locations.Observe(ctx, middleware.CurrentUser(c))
	if err != nil {
		cancel()
		return utils.SendError(c, err)
	}

	holder := viewstate.NewLocationHolder()
	go viewstate.BindLocations(ctx, holder, sub)

	return sendEvents(c, "locations", holder.Updates(), func() {
		holder.Close()
		cancel()
	}, h.logger)
}

// Create godoc
// @Summary Save a location
// @Description Type is COMPANY, PRIVATE, FUEL or OTHER. Description holds site notes, requirements the PPE needed on site.
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveLocationRequest true "Location"
// @Success 201 {object} utils.SuccessResponse{data=domain.SavedLocation}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "", true)
}

// Update godoc
// @Summary Replace a saved location
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param request body dto.SaveLocationRequest true "Location"
// @Success 200 {object} utils.SuccessResponse{data=domain.SavedLocation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"), false)
}

func (h *LocationHandler) save(c *fiber.Ctx, id string, created bool) error {
	var req dto.SaveLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	saved, err := h.locations.Save(c.UserContext(), middleware.CurrentUser(c), req.ToLocation(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	if created {
		return utils.SendCreated(c, saved)
	}
	return utils.SendSuccess(c, saved, nil)
}

// Delete godoc
// @Summary Delete a saved location
// @Tags Locations
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.locations.Delete(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
