package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"shop-analytics/internal/api"
	"shop-analytics/internal/engine"
)

func main() {
	// Optional .env, real env vars win.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 1. The API comes up instantly and answers 503 until the report
	// lands, so the server never blocks on data loading.
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	// 2. ETL in the background: load CSVs when DATA_DIR is set,
	// otherwise generate a demo snapshot.
	go func() {
		t0 := time.Now()

		var snap *engine.Snapshot
		if dir := os.Getenv("DATA_DIR"); dir != "" {
			loaded, err := engine.LoadDir(dir, logger)
			if err != nil {
				logger.Fatal("load data dir", zap.String("dir", dir), zap.Error(err))
			}
			snap = loaded
		} else {
			orders := envInt("SAMPLE_ORDERS", 5000)
			seed := int64(envInt("SEED", 1))
			logger.Info("no DATA_DIR set, generating sample data",
				zap.Int("orders", orders), zap.Int64("seed", seed))
			snap = engine.GenerateSample(orders, seed)
		}

		report, err := snap.Analyze()
		if err != nil {
			logger.Fatal("analyze snapshot", zap.Error(err))
		}
		h.SetReport(report)

		logger.Info("report ready", zap.Duration("took", time.Since(t0)))
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("port", port))
	e.Logger.Fatal(e.Start(":" + port))
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
