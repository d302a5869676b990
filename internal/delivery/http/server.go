package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/railconnect/internal/config"
	"github.com/railconnect/internal/delivery/http/handler"
	"github.com/railconnect/internal/delivery/http/middleware"
	"github.com/railconnect/internal/usecase"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	authUC *usecase.AuthUseCase

	// Handlers
	searchHandler  *handler.SearchHandler
	pnrHandler     *handler.PNRHandler
	authHandler    *handler.AuthHandler
	bookingHandler *handler.BookingHandler
	adminHandler   *handler.AdminHandler
	routeHandler   *handler.RouteHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authUC *usecase.AuthUseCase,
	searchHandler *handler.SearchHandler,
	pnrHandler *handler.PNRHandler,
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	adminHandler *handler.AdminHandler,
	routeHandler *handler.RouteHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "RailConnect",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		authUC:         authUC,
		searchHandler:  searchHandler,
		pnrHandler:     pnrHandler,
		authHandler:    authHandler,
		bookingHandler: bookingHandler,
		adminHandler:   adminHandler,
		routeHandler:   routeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public routes
	api.Get("/trains", s.searchHandler.Search)
	api.Get("/pnr/:pnr", s.pnrHandler.Lookup)

	// Auth routes
	api.Post("/auth/login", s.authHandler.Login)
	api.Post("/auth/logout", s.authHandler.Logout)

	// Passenger routes - требуют активной сессии
	bookings := api.Group("/bookings", middleware.Auth(s.authUC, s.logger))
	bookings.Post("/", s.bookingHandler.Create)
	bookings.Get("/", s.bookingHandler.List)
	bookings.Get("/:id", s.bookingHandler.Get)
	bookings.Delete("/:id", s.bookingHandler.Cancel)

	// Admin routes
	admin := api.Group("/admin", middleware.Auth(s.authUC, s.logger))

	admin.Post("/stations", s.adminHandler.CreateStation)
	admin.Get("/stations", s.adminHandler.ListStations)
	admin.Get("/stations/:id", s.adminHandler.GetStation)
	admin.Put("/stations/:id", s.adminHandler.UpdateStation)
	admin.Delete("/stations/:id", s.adminHandler.DeleteStation)

	admin.Post("/trains", s.adminHandler.CreateTrain)
	admin.Get("/trains", s.adminHandler.ListTrains)
	admin.Get("/trains/:id", s.adminHandler.GetTrain)
	admin.Put("/trains/:id", s.adminHandler.UpdateTrain)
	admin.Delete("/trains/:id", s.adminHandler.DeleteTrain)

	// Route management
	admin.Get("/trains/:id/route", s.routeHandler.ListRoute)
	admin.Post("/trains/:id/stops", s.routeHandler.AddStop)
	admin.Delete("/trains/:id/stops/:stopId", s.routeHandler.RemoveStop)

	admin.Post("/users", s.adminHandler.CreateUser)
	admin.Get("/users", s.adminHandler.ListUsers)
	admin.Get("/users/:id", s.adminHandler.GetUser)
	admin.Put("/users/:id", s.adminHandler.UpdateUser)
	admin.Delete("/users/:id", s.adminHandler.DeleteUser)

	admin.Get("/bookings", s.adminHandler.ListBookings)
	admin.Delete("/bookings/:id", s.adminHandler.DeleteBooking)

	admin.Get("/dashboard", s.adminHandler.Dashboard)
	admin.Get("/reports", s.adminHandler.Reports)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
