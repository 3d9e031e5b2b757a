package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/delivery/http/handler"
	"github.com/truckershub-backend/internal/delivery/http/middleware"
	"github.com/truckershub-backend/internal/pkg/utils"
)

// Handlers - everything the router dispatches to
type Handlers struct {
	Parking   *handler.ParkingHandler
	Routes    *handler.RouteHandler
	Locations *handler.LocationHandler
	Countries *handler.CountryHandler
	Checklist *handler.ChecklistHandler
	Health    *handler.HealthHandler
}

// Server - HTTP server on Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	auth     fiber.Handler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	tokens middleware.TokenValidator,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "TruckersHub API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // event streams stay open
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		auth:     middleware.Auth(tokens, logger),
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger, !s.config.IsProduction()))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next:  skipCompression,
	}))
}

// skipCompression keeps event streams uncompressed whatever the client sends in
// Accept; compression buffers the body and would hold back events.
func skipCompression(c *fiber.Ctx) bool {
	return strings.HasSuffix(c.Path(), "/stream")
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)

	// Parking
	parking := api.Group("/parking")
	parking.Get("/nearby", s.handlers.Parking.Nearby)
	parking.Get("/nearby/stream", s.handlers.Parking.NearbyStream)
	parking.Get("/:id", s.handlers.Parking.GetDetails)
	parking.Get("/:id/reviews", s.handlers.Parking.ListReviews)
	parking.Get("/:id/reviews/stream", s.handlers.Parking.ReviewStream)
	parking.Post("/:id/reviews", s.auth, s.handlers.Parking.SubmitReview)
	parking.Post("/:id/occupancy", s.auth, s.handlers.Parking.ReportOccupancy)

	// Routes, all per user
	routes := api.Group("/routes", s.auth)
	routes.Post("/calculate", s.handlers.Routes.Calculate)
	routes.Post("/calculate/stream", s.handlers.Routes.CalculateStream)
	routes.Post("/", s.handlers.Routes.Save)
	routes.Get("/", s.handlers.Routes.ListSaved)
	routes.Get("/stream", s.handlers.Routes.SavedStream)
	routes.Get("/:id", s.handlers.Routes.GetByID)
	routes.Get("/:id/geojson", s.handlers.Routes.ExportGeoJSON)
	routes.Delete("/:id", s.handlers.Routes.Delete)

	// Saved locations, all per user
	locations := api.Group("/locations", s.auth)
	locations.Get("/", s.handlers.Locations.List)
	locations.Get("/stream", s.handlers.Locations.Stream)
	locations.Post("/", s.handlers.Locations.Create)
	locations.Put("/:id", s.handlers.Locations.Update)
	locations.Delete("/:id", s.handlers.Locations.Delete)

	api.Get("/me/stats", s.auth, s.handlers.Parking.Stats)

	// Reference data
	api.Get("/countries", s.handlers.Countries.List)
	api.Get("/countries/:code", s.handlers.Countries.Get)

	// Departure checklist
	api.Post("/checklist", s.auth, s.handlers.Checklist.Submit)
	api.Get("/checklist", s.auth, s.handlers.Checklist.History)

	api.Get("/polyline/decode", handler.DecodePolyline)
}

// App exposes the router for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler covers errors that did not go through utils.SendError (unknown routes, panics)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "HTTP_ERROR",
				"message": err.Error(),
			},
		})
	}
}
