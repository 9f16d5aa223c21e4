package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"hrms/config"
	"hrms/middleware"
	"hrms/routes"
	"hrms/utils"
	"hrms/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())
	cfg.LogSummary(logger)

	if err := utils.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		logger.WithError(err).Warn("Sentry initialization failed")
	}
	defer sentry.Flush(2 * time.Second)

	// Initialize database connection
	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sweeper := worker.NewMembershipSweeper(db, logger, cfg.SweepInterval)
	go sweeper.Start(ctx)

	rateLimitStorage := middleware.NewRateLimitStorage(cfg.Redis)
	if rateLimitStorage != nil {
		defer rateLimitStorage.Close()
	}

	app := fiber.New(fiber.Config{
		AppName: "hrms",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return utils.ErrorResponse(c, fiberErr.Code, fiberErr.Message)
			}
			return utils.HandleError(c, logger, err)
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORS(cfg.FrontendURL))

	routes.SetupRoutes(app, routes.Dependencies{
		Config:           cfg,
		DB:               db,
		Logger:           logger,
		Tokens:           utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		RateLimitStorage: rateLimitStorage,
	})

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.WithError(err).Error("Server shutdown failed")
		}
	}()

	logger.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
