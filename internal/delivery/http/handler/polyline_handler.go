package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/polyline"
	"github.com/truckershub-backend/internal/pkg/utils"
	"github.com/truckershub-backend/internal/usecase/dto"
)

// DecodePolyline godoc
// @Summary Decode an encoded polyline
// @Tags Utilities
// @Produce json
// @Param points query string true "Encoded polyline"
// @Success 200 {object} utils.SuccessResponse{data=dto.PolylineResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/polyline/decode [get]
func DecodePolyline(c *fiber.Ctx) error {
	points, err := polyline.Decode(c.Query("points"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidPolyline.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}
	return utils.SendSuccess(c, dto.PolylineResponse{Points: points, Count: len(points)}, nil)
}
