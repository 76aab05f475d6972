package main

import (
	"os"

	"vehicle-dashboard/config"
	"vehicle-dashboard/services"
	"vehicle-dashboard/storage"
	"vehicle-dashboard/utils"
	"vehicle-dashboard/web"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Vehicle Market Dashboard starting ===")
	logger.Info("Config — addr: %s | backend: %s | dataset: %s",
		cfg.HTTPAddr, cfg.DatasetBackend, cfg.DatasetPath)

	var source storage.DatasetSource
	switch cfg.DatasetBackend {
	case "postgres":
		source = storage.NewPostgresSource(cfg.DSN(), cfg.MaxRetries, logger)
	default:
		source = storage.NewCSVSource(cfg.DatasetPath)
	}

	store := storage.NewStore(source, logger)

	// Warm the cache. A load failure is not fatal: the dashboard serves
	// the empty state with the error surfaced on every page.
	ds, err := store.Default()
	if err != nil {
		logger.Warn("Dataset unavailable, serving empty state: %v", err)
	} else {
		m := services.SummaryMetrics(ds)
		logger.Info("Dataset ready — %d listings | %d manufacturers | %d models",
			m.TotalListings, m.UniqueManufacturers, m.UniqueModels)
	}

	srv := web.NewServer(cfg, logger, store)
	logger.Info("Listening on %s", cfg.HTTPAddr)
	if err := srv.Run(); err != nil {
		logger.Error("HTTP server failed: %v", err)
		os.Exit(1)
	}
}
