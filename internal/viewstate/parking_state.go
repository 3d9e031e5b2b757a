package viewstate

import "github.com/truckershub-backend/internal/domain"

type ParkingState struct {
	Spots        []*domain.ParkingSpot `json:"spots"`
	Selected     *domain.ParkingSpot   `json:"selected,omitempty"`
	Reviews      []*domain.Review      `json:"reviews"`
	IsLoading    bool                  `json:"is_loading"`
	ErrorMessage string                `json:"error_message,omitempty"`
}

type ParkingHolder struct {
	h *holder[ParkingState]
}

func NewParkingHolder() *ParkingHolder {
	return &ParkingHolder{h: newHolder[ParkingState]()}
}

func (p *ParkingHolder) Snapshot() ParkingState {
	return p.h.snapshot()
}

// Updates delivers the latest state after each change; closed by Close
func (p *ParkingHolder) Updates() <-chan ParkingState {
	return p.h.updates
}

// SetSpots replaces the list and keeps the selection in sync with it
func (p *ParkingHolder) SetSpots(spots []*domain.ParkingSpot) {
	p.h.update(func(s *ParkingState) {
		s.Spots = spots
		s.IsLoading = false
		s.ErrorMessage = ""
		if s.Selected == nil {
			return
		}
		for _, spot := range spots {
			if spot.ID == s.Selected.ID {
				s.Selected = spot
				return
			}
		}
	})
}

func (p *ParkingHolder) Select(spot *domain.ParkingSpot) {
	p.h.update(func(s *ParkingState) {
		s.Selected = spot
		s.Reviews = nil
	})
}

func (p *ParkingHolder) SetReviews(reviews []*domain.Review) {
	p.h.update(func(s *ParkingState) {
		s.Reviews = reviews
		s.IsLoading = false
		s.ErrorMessage = ""
	})
}

func (p *ParkingHolder) SetLoading(loading bool) {
	p.h.update(func(s *ParkingState) {
		s.IsLoading = loading
	})
}

// SetError stores the user-facing message of err; nil clears it
func (p *ParkingHolder) SetError(err error) {
	p.h.update(func(s *ParkingState) {
		s.IsLoading = false
		if err == nil {
			s.ErrorMessage = ""
			return
		}
		s.ErrorMessage = errorMessage(err)
	})
}

func (p *ParkingHolder) Close() {
	p.h.close()
}

func (p *ParkingHolder) Closed() bool {
	return p.h.isClosed()
}
