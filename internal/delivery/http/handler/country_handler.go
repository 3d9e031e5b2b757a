package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/pkg/utils"
)

type CountryHandler struct {
	countries CountryService
	logger    *zap.Logger
}

func NewCountryHandler(countries CountryService, logger *zap.Logger) *CountryHandler {
	return &CountryHandler{
		countries: countries,
		logger:    logger,
	}
}

// List godoc
// @Summary Driving rules of all known countries
// @Tags Countries
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.CountryInfo}
// @Router /api/v1/countries [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	countries, err := h.countries.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, countries)
}

// Get godoc
// @Summary Driving rules of one country
// @Tags Countries
// @Produce json
// @Param code path string true "ISO 3166-1 alpha-2 code"
// @Success 200 {object} utils.SuccessResponse{data=domain.CountryInfo}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/countries/{code} [get]
func (h *CountryHandler) Get(c *fiber.Ctx) error {
	country, err := h.countries.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, country, nil)
}
