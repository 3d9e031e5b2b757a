package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const heartbeatInterval = 15 * time.Second

// streamContext outlives the fiber handler: fasthttp runs the body writer after it returns
func streamContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

// sendEvents streams every value of updates as a Server-Sent Event until the
// channel closes or the client goes away, then calls release.
func sendEvents[T any](c *fiber.Ctx, event string, updates <-chan T, release func(), logger *zap.Logger) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	path := c.Path()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer release()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		n, err := streamEvents(w, event, updates, ticker.C)
		logger.Debug("Event stream closed",
			zap.String("path", path),
			zap.Int("events", n),
			zap.Error(err),
		)
	}))

	return nil
}

// streamEvents returns the number of events written and the write error that ended it, if any
func streamEvents[T any](w *bufio.Writer, event string, updates <-chan T, heartbeat <-chan time.Time) (int, error) {
	sent := 0
	for {
		select {
		case v, ok := <-updates:
			if !ok {
				return sent, nil
			}
			sent++
			if err := writeEvent(w, sent, event, v); err != nil {
				return sent, err
			}
		case <-heartbeat:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return sent, err
			}
			if err := w.Flush(); err != nil {
				return sent, err
			}
		}
	}
}

func writeEvent(w *bufio.Writer, id int, event string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", id, event, payload); err != nil {
		return err
	}
	return w.Flush()
}
