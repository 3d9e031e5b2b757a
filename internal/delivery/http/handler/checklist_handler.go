package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/delivery/http/middleware"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/utils"
	"github.com/truckershub-backend/internal/pkg/validator"
	"github.com/truckershub-backend/internal/usecase/dto"
)

type ChecklistHandler struct {
	checklist ChecklistService
	logger    *zap.Logger
}

func NewChecklistHandler(checklist ChecklistService, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		checklist: checklist,
		logger:    logger,
	}
}

// Submit godoc
// @Summary Record a departure walk-around check
// @Tags Checklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DepartureCheckRequest true "Checkpoint results"
// @Success 201 {object} utils.SuccessResponse{data=dto.DepartureCheckResponse}
// @Router /api/v1/checklist [post]
func (h *ChecklistHandler) Submit(c *fiber.Ctx) error {
	var req dto.DepartureCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	check, err := h.checklist.Submit(c.UserContext(), middleware.CurrentUser(c), req.Checks)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, dto.DepartureCheckResponse{
		DepartureCheck: check,
		Pending:        check.Pending(),
	})
}

// History godoc
// @Summary Latest departure checks of the signed-in user
// @Tags Checklist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DepartureCheck}
// @Router /api/v1/checklist [get]
func (h *ChecklistHandler) History(c *fiber.Ctx) error {
	checks, err := h.checklist.History(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, checks)
}
