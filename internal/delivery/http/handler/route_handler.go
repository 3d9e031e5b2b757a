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

type RouteHandler struct {
	routes RouteService
	logger *zap.Logger
}

func NewRouteHandler(routes RouteService, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routes: routes,
		logger: logger,
	}
}

// Calculate godoc
// @Summary Calculate a truck route
// @Description Start, waypoints and end in travel order. The truck profile needs length, width, height and weight of tractor and trailer.
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CalculateRouteRequest true "Route request"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/calculate [post]
func (h *RouteHandler) Calculate(c *fiber.Ctx) error {
	var req dto.CalculateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routes.Calculate(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.NewRouteResponse(route), nil)
}

// CalculateStream godoc
// @Summary Calculate a truck route with progress
// @Description Server-Sent Events; "route" events carry the view state: is_calculating first, then the route or an error message. The stream ends after the result.
// @Tags Routes
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param request body dto.CalculateRouteRequest true "Route request"
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes/calculate/stream [post]
func (h *RouteHandler) CalculateStream(c *fiber.Ctx) error {
	var req dto.CalculateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	user := middleware.CurrentUser(c)
	ctx, cancel := streamContext()
	holder := viewstate.NewRouteHolder()
	holder.SetCalculating(true)

	go func() {
		defer holder.Close()
		route, err := h.routes.Calculate(ctx, user, req)
		if err != nil {
			holder.SetError(err)
			return
		}
		holder.SetCurrent(route)
	}()

	return sendEvents(c, "route", holder.Updates(), func() {
		holder.Close()
		cancel()
	}, h.logger)
}

// Save godoc
// @Summary Save a calculated route
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.Route true "Route"
// @Success 201 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Router /api/v1/routes [post]
func (h *RouteHandler) Save(c *fiber.Ctx) error {
	var route domain.Route
	if err := c.BodyParser(&route); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	saved, err := h.routes.Save(c.UserContext(), middleware.CurrentUser(c), &route)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, dto.NewRouteResponse(saved))
}

// ListSaved godoc
// @Summary Saved routes of the signed-in user, newest first
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RouteResponse}
// @Router /api/v1/routes [get]
func (h *RouteHandler) ListSaved(c *fiber.Ctx) error {
	routes, err := h.routes.ListSaved(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	result := make([]dto.RouteResponse, 0, len(routes))
	for _, r := range routes {
		result = append(result, dto.NewRouteResponse(r))
	}
	return utils.SendList(c, result)
}

// SavedStream godoc
// @Summary Live saved routes of the signed-in user
// @Tags Routes
// @Produce text/event-stream
// @Security BearerAuth
// @Router /api/v1/routes/stream [get]
func (h *RouteHandler) SavedStream(c *fiber.Ctx) error {
	ctx, cancel := streamContext()
	sub, err := h.routes.ObserveSaved(ctx, middleware.CurrentUser(c))
	if err != nil {
		cancel()
		return utils.SendError(c, err)
	}

	holder := viewstate.NewRouteHolder()
	go viewstate.BindSavedRoutes(ctx, holder, sub)

	return sendEvents(c, "routes", holder.Updates(), func() {
		holder.Close()
		cancel()
	}, h.logger)
}

// GetByID godoc
// @Summary One saved route
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	route, err := h.routes.GetByID(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.NewRouteResponse(route), nil)
}

// ExportGeoJSON godoc
// @Summary Route path as a GeoJSON feature
// @Tags Routes
// @Produce application/geo+json
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Router /api/v1/routes/{id}/geojson [get]
func (h *RouteHandler) ExportGeoJSON(c *fiber.Ctx) error {
	raw, err := h.routes.ExportGeoJSON(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="route-`+c.Params("id")+`.geojson"`)
	return c.Send(raw)
}

// Delete godoc
// @Summary Delete a saved route
// @Tags Routes
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [delete]
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	if err := h.routes.Delete(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
