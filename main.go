package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"food-rescue-api/config"
	"food-rescue-api/handlers"
	"food-rescue-api/logging"
	"food-rescue-api/middleware"
	"food-rescue-api/repository"
	"food-rescue-api/routes"
	"food-rescue-api/server"
	"food-rescue-api/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Environment == config.EnvTest {
		gin.SetMode(gin.TestMode)
	}

	db, err := config.OpenDB(cfg, logging.Gorm(logger))
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	h := &handlers.Handler{
		Users:        repository.NewUserRepository(db),
		Donors:       repository.NewDonorRepository(db),
		Volunteers:   repository.NewVolunteerRepository(db),
		Donations:    repository.NewDonationRepository(db),
		Tokens:       tokens,
		Logger:       logger,
		ExposeErrors: !cfg.IsProduction(),
	}

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Handler:  h,
		Verifier: tokens,
		Logger:   logger,
		Metrics:  middleware.NewMetrics(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Environment),
		zap.String("db_driver", cfg.DBDriver),
	)
	if err := server.NewHTTPServer(router).Run(ctx, ":"+cfg.Port); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
