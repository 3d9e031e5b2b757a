package viewstate

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/usecase"
)

// bind feeds every value of sub into apply and every reload error into fail
// until ctx is done or sub ends. It then closes sub and calls end.
func bind[T any](ctx context.Context, sub *usecase.Subscription[T], apply func(T), fail func(error), end func()) {
	defer end()
	defer sub.Close()

	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-sub.C():
			if !ok {
				return
			}
			apply(v)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fail(err)
		}
	}
}

// BindParking pumps the nearby spots into the holder. The holder is closed when
// the subscription ends so readers of Updates stop with it.
func BindParking(ctx context.Context, holder *ParkingHolder, sub *usecase.Subscription[[]*domain.ParkingSpot]) {
	bind(ctx, sub, holder.SetSpots, holder.SetError, holder.Close)
}

// BindReviews pumps a spot's reviews into the holder
func BindReviews(ctx context.Context, holder *ParkingHolder, sub *usecase.Subscription[[]*domain.Review]) {
	bind(ctx, sub, holder.SetReviews, holder.SetError, holder.Close)
}

// BindSavedRoutes pumps the user's saved routes into the holder
func BindSavedRoutes(ctx context.Context, holder *RouteHolder, sub *usecase.Subscription[[]*domain.Route]) {
	bind(ctx, sub, holder.SetSaved, holder.SetError, holder.Close)
}

// BindLocations pumps the user's saved locations into the holder
func BindLocations(ctx context.Context, holder *LocationHolder, sub *usecase.Subscription[[]*domain.SavedLocation]) {
	bind(ctx, sub, holder.SetLocations, holder.SetError, holder.Close)
}
