package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - origins is a comma-separated list. Credentials are allowed so the web
// client can send the bearer token on event streams; Last-Event-ID lets it resume.
func CORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization,Last-Event-ID",
		ExposeHeaders:    "Content-Disposition",
		AllowCredentials: true,
	})
}
