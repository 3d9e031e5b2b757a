package usecase

import (
	"context"
	"sync"

	"github.com/truckershub-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// Subscription - a live stream of values. It ends when the parent context is
// done or Close is called; both channels are closed afterwards.
// Values and reload errors are delivered unbuffered and in order, so a consumer
// must receive from C and Errors in the same select.
type Subscription[T any] struct {
	ch     chan T
	errs   chan error
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newSubscription[T any](parent context.Context) *Subscription[T] {
	ctx, cancel := context.WithCancel(parent)
	return &Subscription[T]{
		ch:     make(chan T),
		errs:   make(chan error),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// C returns the channel values are delivered on
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Errors delivers reload failures; the stream keeps running after each one
func (s *Subscription[T]) Errors() <-chan error {
	return s.errs
}

// Close stops the stream and waits for the producer to exit. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once the producer has exited
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// emit delivers v unless the subscription ended first
func (s *Subscription[T]) emit(v T) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}

	select {
	case s.ch <- v:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// fail delivers a reload error unless the subscription ended first
func (s *Subscription[T]) fail(err error) bool {
	select {
	case s.errs <- err:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Subscription[T]) finish() {
	close(s.ch)
	close(s.errs)
	close(s.done)
}

// observe subscribes to channel before the first load so no change in between is lost.
// Bursts of events are coalesced into a single reload.
func observe[T any](
	parent context.Context,
	feed repository.ChangeFeed,
	channel string,
	load func(ctx context.Context) (T, error),
	logger *zap.Logger,
) (*Subscription[T], error) {
	sub := newSubscription[T](parent)

	events, unsubscribe, err := feed.Subscribe(sub.ctx, channel)
	if err != nil {
		sub.cancel()
		return nil, err
	}

	initial, err := load(sub.ctx)
	if err != nil {
		_ = unsubscribe()
		sub.cancel()
		return nil, err
	}

	go func() {
		defer sub.finish()
		defer func() {
			if err := unsubscribe(); err != nil {
				logger.Warn("Failed to unsubscribe", zap.String("channel", channel), zap.Error(err))
			}
		}()

		if !sub.emit(initial) {
			return
		}

		for {
			select {
			case <-sub.ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
			}

		drain:
			for {
				select {
				case _, ok := <-events:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}

			value, err := load(sub.ctx)
			if err != nil {
				if sub.ctx.Err() != nil {
					return
				}
				logger.Error("Failed to reload subscription", zap.String("channel", channel), zap.Error(err))
				if !sub.fail(err) {
					return
				}
				continue
			}

			if !sub.emit(value) {
				return
			}
		}
	}()

	return sub, nil
}
