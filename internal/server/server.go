package server

import (
	"context"

	"coursehub-be/internal/bootstrap"
	"coursehub-be/internal/config"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/pkg/storage"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		// multipart attachment uploads go through the API
		BodyLimit: storage.MaxUploadSize,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	RegisterRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{
		"url": "http://localhost:" + s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func RegisterRoutes(app *fiber.App, c *bootstrap.Container) {
	if c.FileController != nil {
		c.FileController.RegisterRoutes(app)
	}

	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)

	c.CourseController.RegisterRoutes(api)
	c.SegmentController.RegisterRoutes(api)
	c.BookmarkController.RegisterRoutes(api)
	c.AttachmentController.RegisterRoutes(api)
	c.StorageController.RegisterRoutes(api)

	c.ExerciseController.RegisterRoutes(api)
	c.ChartController.RegisterRoutes(api)
}
