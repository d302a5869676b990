package main

// @title RailConnect API
// @version 1.0.0
// @description Сервис бронирования железнодорожных билетов. Предоставляет API для поиска поездов между станциями, бронирования и отмены билетов, проверки статуса по PNR и административного управления каталогом.
// @description
// @description Основные возможности:
// @description - Поиск поездов по паре станций с расчётом цены по сегментам
// @description - Бронирование с атомарным списанием мест и генерацией PNR
// @description - Публичная проверка статуса билета по номеру PNR
// @description - Админ-панель: станции, поезда, маршруты, пользователи, отчёты

// @contact.name API Support
// @contact.email support@railconnect.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/railconnect/docs/swagger"
	"github.com/railconnect/internal/config"
	httpDelivery "github.com/railconnect/internal/delivery/http"
	"github.com/railconnect/internal/delivery/http/handler"
	"github.com/railconnect/internal/pkg/logger"
	"github.com/railconnect/internal/repository/cache"
	"github.com/railconnect/internal/repository/postgres"
	redisRepo "github.com/railconnect/internal/repository/redis"
	"github.com/railconnect/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting RailConnect API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	stationRepo := postgres.NewStationRepository(db)
	trainRepo := postgres.NewTrainRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	authUC := usecase.NewAuthUseCase(
		userRepo,
		sessionRepo,
		log,
		cfg.Cache.SessionTTL,
	)

	searchUC := usecase.NewSearchUseCase(
		trainRepo,
		stationRepo,
		routeRepo,
		cacheRepo,
		log,
		cfg.Cache.TrainListTTL,
	)

	bookingUC := usecase.NewBookingUseCase(
		bookingRepo,
		trainRepo,
		routeRepo,
		userRepo,
		streamRepo,
		log,
		cfg.Booking.PNRMaxAttempts,
	)

	routeUC := usecase.NewRouteUseCase(
		routeRepo,
		trainRepo,
		cacheRepo,
		log,
	)

	adminUC := usecase.NewAdminUseCase(
		stationRepo,
		trainRepo,
		userRepo,
		bookingRepo,
		statsRepo,
		cacheRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	searchHandler := handler.NewSearchHandler(searchUC, log)
	pnrHandler := handler.NewPNRHandler(bookingUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)
	bookingHandler := handler.NewBookingHandler(bookingUC, log)
	adminHandler := handler.NewAdminHandler(adminUC, log)
	routeHandler := handler.NewRouteHandler(routeUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		authUC,
		searchHandler,
		pnrHandler,
		authHandler,
		bookingHandler,
		adminHandler,
		routeHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
