package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery turns handler panics into 500 responses and logs them with the
// request path. Stacks are attached outside production only.
func Recovery(logger *zap.Logger, withStack bool) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("panic", fmt.Sprint(e)),
			}
			if withStack {
				fields = append(fields, zap.ByteString("stack", debug.Stack()))
			}
			logger.Error("Recovered from panic", fields...)
		},
	})
}
