// Package viewstate keeps the latest use case results together with transient
// client state (loading flags, error messages) for live views.
package viewstate

import (
	stderrors "errors"
	"sync"

	"github.com/truckershub-backend/internal/pkg/errors"
)

const fallbackErrorMessage = "Something went wrong, please try again"

// holder publishes every change as the latest value. Writes after Close are ignored.
type holder[S any] struct {
	mu      sync.Mutex
	state   S
	closed  bool
	updates chan S
}

func newHolder[S any]() *holder[S] {
	return &holder[S]{updates: make(chan S, 1)}
}

func (h *holder[S]) snapshot() S {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *holder[S]) update(fn func(s *S)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	fn(&h.state)

	// keep only the newest state for slow readers
	select {
	case <-h.updates:
	default:
	}
	h.updates <- h.state
}

func (h *holder[S]) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.updates)
}

func (h *holder[S]) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// errorMessage returns the user-facing text of err
func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return fallbackErrorMessage
}
