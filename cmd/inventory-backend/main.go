package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shelfglow/inventory-backend/internal/api/handlers"
	"github.com/shelfglow/inventory-backend/internal/api/middleware"
	"github.com/shelfglow/inventory-backend/internal/cache"
	"github.com/shelfglow/inventory-backend/internal/config"
	"github.com/shelfglow/inventory-backend/internal/health"
	"github.com/shelfglow/inventory-backend/internal/metrics"
	repository "github.com/shelfglow/inventory-backend/internal/repositories"
	service "github.com/shelfglow/inventory-backend/internal/services"
	"github.com/shelfglow/inventory-backend/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on the environment")
	}

	// Load config
	cfg := config.MustLoad()

	// Tracing setup, skipped when no collector endpoint is configured
	if cfg.Telemetry.Endpoint != "" {

		provider, err := telemetry.Init(context.Background(), "inventory-backend", cfg.Telemetry.Endpoint, cfg.Env)
		if err != nil {
			slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := provider.Shutdown(shutdownCtx); err != nil {
				slog.Error("⚠️ Error shutting down tracing", slog.String("error", err.Error()))
			}
		}()

	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repos.Close(closeCtx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := productCache.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	productService := service.NewProductService(repos.Product, productCache)
	productHandler := handlers.NewProductHandler(productService)
	importExportService := service.NewImportExportService(repos.Product, productCache)
	importExportHandler := handlers.NewImportExportHandler(importExportService, cfg.Import.MaxUploadBytes)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", productHandler.UpdateProduct())
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", productHandler.DeleteProduct())
	routerMux.HandleFunc("DELETE /api/v1/products", productHandler.DeleteAllProducts())
	routerMux.HandleFunc("POST /api/v1/products/import", importExportHandler.ImportProducts())
	routerMux.HandleFunc("POST /api/v1/products/export", importExportHandler.ExportProducts())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "inventory-backend")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
