package viewstate

import "github.com/truckershub-backend/internal/domain"

type RouteState struct {
	Current       *domain.Route   `json:"current,omitempty"`
	Saved         []*domain.Route `json:"saved"`
	IsCalculating bool            `json:"is_calculating"`
	ErrorMessage  string          `json:"error_message,omitempty"`
}

type RouteHolder struct {
	h *holder[RouteState]
}

func NewRouteHolder() *RouteHolder {
	return &RouteHolder{h: newHolder[RouteState]()}
}

func (r *RouteHolder) Snapshot() RouteState {
	return r.h.snapshot()
}

func (r *RouteHolder) Updates() <-chan RouteState {
	return r.h.updates
}

func (r *RouteHolder) SetCurrent(route *domain.Route) {
	r.h.update(func(s *RouteState) {
		s.Current = route
		s.IsCalculating = false
		s.ErrorMessage = ""
	})
}

func (r *RouteHolder) SetSaved(routes []*domain.Route) {
	r.h.update(func(s *RouteState) {
		s.Saved = routes
		s.ErrorMessage = ""
	})
}

func (r *RouteHolder) SetCalculating(calculating bool) {
	r.h.update(func(s *RouteState) {
		s.IsCalculating = calculating
		if calculating {
			s.ErrorMessage = ""
		}
	})
}

func (r *RouteHolder) SetError(err error) {
	r.h.update(func(s *RouteState) {
		s.IsCalculating = false
		if err == nil {
			s.ErrorMessage = ""
			return
		}
		s.ErrorMessage = errorMessage(err)
	})
}

func (r *RouteHolder) Close() {
	r.h.close()
}
