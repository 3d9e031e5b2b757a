package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
)

type CountryUseCase struct {
	countryRepo repository.CountryRepository
	cacheRepo   repository.CacheRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewCountryUseCase(
	countryRepo repository.CountryRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CountryUseCase {
	return &CountryUseCase{
		countryRepo: countryRepo,
		cacheRepo:   cacheRepo,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Get returns the rules of one country by ISO code, case-insensitive
func (uc *CountryUseCase) Get(ctx context.Context, code string) (*domain.CountryInfo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return nil, errors.ErrCountryNotFound
	}

	cached, err := uc.cacheRepo.GetCountry(ctx, code)
	if err != nil {
		uc.logger.Warn("Country cache read failed", zap.String("code", code), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	country, err := uc.countryRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, errors.ErrCountryNotFound
	}

	if err := uc.cacheRepo.SetCountry(ctx, country, uc.cacheTTL); err != nil {
		uc.logger.Warn("Country cache write failed", zap.String("code", code), zap.Error(err))
	}

	return country, nil
}

func (uc *CountryUseCase) List(ctx context.Context) ([]*domain.CountryInfo, error) {
	countries, err := uc.countryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []*domain.CountryInfo{}
	}
	return countries, nil
}
