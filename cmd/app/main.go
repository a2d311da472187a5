package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/directoryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; the environment wins either way.
	_ = godotenv.Load(".env")

	config := cmd.LoadConfig()
	logger := newLogger(config.LogLevel)

	db, err := openDatabase(config)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}

	root := cmd.NewCompositionRoot(config, db, redisClient, logger)

	sweepJob := root.CreateConsiderListSweepJob()
	if err := sweepJob.Start(); err != nil {
		logger.Fatal().Err(err).Msg("sweep job start failed")
	}
	defer sweepJob.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()
	logger.Info().Str("port", config.HTTPPort).Msg("fulfillment service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	logger.Info().Msg("fulfillment service stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.LineItemDTO{},
		&invoicerepo.StatusTransitionDTO{},
		&sessionrepo.SessionDTO{},
		&deliveryrepo.DeliveryDTO{},
		&returnrepo.ReturnDTO{},
		&directoryrepo.WorkerDTO{},
		&directoryrepo.CourierDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
