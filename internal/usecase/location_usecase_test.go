package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/usecase"
)

func newLocationUseCase() (*usecase.LocationUseCase, *MockLocationRepository, *fakeFeed) {
	repo := &MockLocationRepository{}
	feed := newFakeFeed()
	return usecase.NewLocationUseCase(repo, feed, zap.NewNop()), repo, feed
}

func bebraDepot() *domain.SavedLocation {
	return &domain.SavedLocation{
		Name:         "Zentrallager Bebra",
		Location:     domain.Coordinate{Lat: 50.97, Lon: 9.79},
		Type:         domain.LocationCompany,
		Description:  "Gate 3, ring before backing in",
		Requirements: "Helmet, vest, safety shoes",
	}
}

func TestLocationUseCase_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("new location belongs to the user", func(t *testing.T) {
		uc, repo, feed := newLocationUseCase()
		repo.On("Save", ctx, mock.AnythingOfType("*domain.SavedLocation")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.SavedLocation).ID = "loc-1" }).
			Return(nil)

		saved, err := uc.Save(ctx, driver, bebraDepot())

		require.NoError(t, err)
		assert.Equal(t, driver.ID, saved.UserID)
		assert.Equal(t, "Helmet, vest, safety shoes", saved.Requirements)
		assert.Equal(t, 1, feed.publishedTo(domain.LocationChannel(driver.ID)))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("update keeps the creation time", func(t *testing.T) {
		uc, repo, _ := newLocationUseCase()
		created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		existing := bebraDepot()
		existing.ID = "loc-1"
		existing.UserID = driver.ID
		existing.CreatedAt = created

		repo.On("GetByID", ctx, "loc-1").Return(existing, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		update := bebraDepot()
		update.ID = "loc-1"
		update.Description = "Gate 5 since March"

		saved, err := uc.Save(ctx, driver, update)
		require.NoError(t, err)
		assert.True(t, created.Equal(saved.CreatedAt))
		assert.Equal(t, "Gate 5 since March", saved.Description)
	})

	t.Run("location of another user is hidden", func(t *testing.T) {
		uc, repo, feed := newLocationUseCase()
		existing := bebraDepot()
		existing.ID = "loc-9"
		existing.UserID = "someone-else"
		repo.On("GetByID", ctx, "loc-9").Return(existing, nil)

		update := bebraDepot()
		update.ID = "loc-9"

		_, err := uc.Save(ctx, driver, update)
		assert.ErrorIs(t, err, errors.ErrLocationNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Zero(t, feed.publishedTo(domain.LocationChannel(driver.ID)))
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, repo, _ := newLocationUseCase()

		unnamed := bebraDepot()
		unnamed.Name = ""
		_, err := uc.Save(ctx, driver, unnamed)
		assert.ErrorIs(t, err, errors.ErrInvalidLocation)

		typeless := bebraDepot()
		typeless.Type = "WAREHOUSE"
		_, err = uc.Save(ctx, driver, typeless)
		assert.ErrorIs(t, err, errors.ErrInvalidLocation)

		offMap := bebraDepot()
		offMap.Location = domain.Coordinate{Lat: 95, Lon: 9}
		_, err = uc.Save(ctx, driver, offMap)
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

		_, err = uc.Save(ctx, domain.UserIdentity{}, bebraDepot())
		assert.ErrorIs(t, err, errors.ErrUnauthorized)

		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLocationUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("own location", func(t *testing.T) {
		uc, repo, feed := newLocationUseCase()
		loc := bebraDepot()
		loc.ID = "loc-1"
		loc.UserID = driver.ID
		repo.On("GetByID", ctx, "loc-1").Return(loc, nil)
		repo.On("Delete", ctx, "loc-1").Return(nil)

		require.NoError(t, uc.Delete(ctx, driver, "loc-1"))
		assert.Equal(t, 1, feed.publishedTo(domain.LocationChannel(driver.ID)))
	})

	t.Run("missing or foreign location", func(t *testing.T) {
		uc, repo, _ := newLocationUseCase()
		foreign := bebraDepot()
		foreign.ID = "loc-2"
		foreign.UserID = "someone-else"
		repo.On("GetByID", ctx, "loc-2").Return(foreign, nil)
		repo.On("GetByID", ctx, "loc-3").Return(nil, nil)

		assert.ErrorIs(t, uc.Delete(ctx, driver, "loc-2"), errors.ErrLocationNotFound)
		assert.ErrorIs(t, uc.Delete(ctx, driver, "loc-3"), errors.ErrLocationNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLocationUseCase_Observe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uc, repo, _ := newLocationUseCase()
	first := bebraDepot()
	first.UserID = driver.ID
	repo.On("ListByUser", mock.Anything, driver.ID).Return([]*domain.SavedLocation{first}, nil).Once()
	repo.On("ListByUser", mock.Anything, driver.ID).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	sub, err := uc.Observe(ctx, driver)
	require.NoError(t, err)
	defer sub.Close()

	assert.Len(t, receive(t, sub.C()), 1)

	_, err = uc.Save(ctx, driver, bebraDepot())
	require.NoError(t, err)

	again := receive(t, sub.C())
	assert.NotNil(t, again)
	assert.Empty(t, again)
	repo.AssertNumberOfCalls(t, "ListByUser", 2)

	_, err = uc.Observe(ctx, domain.UserIdentity{})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}
