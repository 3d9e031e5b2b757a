package viewstate

import "github.com/truckershub-backend/internal/domain"

type LocationState struct {
	Locations    []*domain.SavedLocation `json:"locations"`
	ErrorMessage string                  `json:"error_message,omitempty"`
}

type LocationHolder struct {
	h *holder[LocationState]
}

func NewLocationHolder() *LocationHolder {
	return &LocationHolder{h: newHolder[LocationState]()}
}

func (l *LocationHolder) Snapshot() LocationState {
	return l.h.snapshot()
}

func (l *LocationHolder) Updates() <-chan LocationState {
	return l.h.updates
}

func (l *LocationHolder) SetLocations(locations []*domain.SavedLocation) {
	l.h.update(func(s *LocationState) {
		s.Locations = locations
		s.ErrorMessage = ""
	})
}

// SetError keeps the last known locations next to the message
func (l *LocationHolder) SetError(err error) {
	l.h.update(func(s *LocationState) {
		if err == nil {
			s.ErrorMessage = ""
			return
		}
		s.ErrorMessage = errorMessage(err)
	})
}

func (l *LocationHolder) Close() {
	l.h.close()
}
