package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
)

const defaultHistoryLimit = 20

type ChecklistUseCase struct {
	checkRepo repository.DepartureCheckRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewChecklistUseCase(checkRepo repository.DepartureCheckRepository, logger *zap.Logger) *ChecklistUseCase {
	return &ChecklistUseCase{
		checkRepo: checkRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// Submit records one walk-around check; unknown checkpoints are ignored
func (uc *ChecklistUseCase) Submit(ctx context.Context, user domain.UserIdentity, checks map[string]bool) (*domain.DepartureCheck, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	check := domain.NewDepartureCheck(user, checks, uc.now())

	if err := uc.checkRepo.Create(ctx, check); err != nil {
		uc.logger.Error("Failed to store departure check", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	if !check.AllClear {
		uc.logger.Info("Departure check incomplete",
			zap.String("user_id", user.ID),
			zap.Strings("pending", check.Pending()),
		)
	}

	return check, nil
}

// History returns the latest checks of the user, newest first
func (uc *ChecklistUseCase) History(ctx context.Context, user domain.UserIdentity) ([]*domain.DepartureCheck, error) {
	if user.IsAnonymous() {
		return nil, errors.ErrUnauthorized
	}

	checks, err := uc.checkRepo.ListByUser(ctx, user.ID, defaultHistoryLimit)
	if err != nil {
		return nil, err
	}
	if checks == nil {
		checks = []*domain.DepartureCheck{}
	}
	return checks, nil
}
