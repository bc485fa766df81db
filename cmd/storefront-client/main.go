package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopease/storefront-client/internal/catalog"
	"github.com/shopease/storefront-client/internal/client"
	"github.com/shopease/storefront-client/internal/config"
	"github.com/shopease/storefront-client/internal/metrics"
	service "github.com/shopease/storefront-client/internal/services"
	"github.com/shopease/storefront-client/internal/storage"
	"github.com/shopease/storefront-client/internal/store"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Durable state setup
	var (
		stateStore storage.Store
		err        error
	)

	if cfg.RedisEnabled() {
		stateStore = storage.NewRedisStore(storage.NewRedisClient(&cfg.RedisConnect), "storefront")
	} else {
		stateStore, err = storage.NewFileStore(cfg.StateDir)
		if err != nil {
			slog.Error("❌ Error opening the state directory", "error", err.Error())
			os.Exit(1)
		}
	}

	defer func() {
		if err := stateStore.Close(); err != nil {
			slog.Error("⚠️ Error closing state storage", slog.String("error", err.Error()))
		}
	}()

	ctx := context.Background()

	globalStore := store.New(catalog.Products(), stateStore, logger, cfg.Store.NotificationTTL)
	globalStore.Hydrate(ctx)

	gateway := client.NewGateway(&cfg.API, stateStore, logger)
	storefront := service.NewStorefrontService(gateway, globalStore, logger)

	snapshot := globalStore.Snapshot()

	slog.Info("🛍️ Storefront engine ready",
		slog.String("env", cfg.Env),
		slog.String("api_base", cfg.API.BaseURL),
		slog.Int("catalog_size", len(snapshot.Products)),
		slog.Int("cart_lines", len(snapshot.Cart)),
		slog.Bool("authenticated", snapshot.Session.Authenticated()),
	)

	// Warm the order history for a returning session
	if snapshot.Session.Authenticated() {
		if orders, err := storefront.OrderHistory(ctx); err == nil {
			slog.Info("📦 Order history loaded", slog.Int("orders", len(orders)))
		}
	}

	// Optional metrics endpoint
	var metricsServer *http.Server

	if cfg.MetricsAddr != "" {

		metricsMux := http.NewServeMux()
		metricsMux.Handle("GET /metrics", metrics.Handler())

		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: metricsMux,
		}

		slog.Info("📈 Metrics listener starting", slog.String("address", cfg.MetricsAddr))

		go func() {
			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("❌ Failed to start metrics listener", slog.Any("error", err.Error()))
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop...")

	if metricsServer != nil {

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Metrics listener shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}

	slog.Info("✅ Storefront engine shut down gracefully.")
}
