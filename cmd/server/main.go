package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/api"
	"ecopontos-backend-go/internal/config"
	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/metrics"
)

func main() {
	// --- 1. Load .env outside release mode; in production the environment is set directly ---
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 3. Initialize Logger (Zap) ---
	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded",
		zap.String("storeBackend", appConfig.StoreBackend),
		zap.String("logLevel", appConfig.LogLevel))

	// --- 4. Metrics registry ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// --- 5. Store and identity provider ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), appConfig.InitTimeout)
	backend, err := newBackend(initCtx, appConfig, zapLogger)
	cancelInit()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize the data backend", zap.Error(err))
	}
	store := db.NewInstrumentedStore(backend.store, collector)

	// --- 6. Repositories and services ---
	pointRepo := db.NewCollectionPointRepository(store)
	suggestionRepo := db.NewSuggestionRepository(store)
	userRepo := db.NewUserRepository(store)

	services := api.Services{
		CollectionPoints: core.NewCollectionPointService(pointRepo, collector, zapLogger),
		Ratings:          core.NewRatingService(pointRepo, collector),
		Suggestions:      core.NewSuggestionService(suggestionRepo, pointRepo, collector, zapLogger),
		Users:            core.NewUserService(userRepo, backend.provider, collector, zapLogger),
		Diagnostics:      core.NewDiagnosticsService(store),
	}

	// --- 7. Gin engine and global middleware (order matters) ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	if limiter := useGlobalMiddleware(router, appConfig, zapLogger, collector); limiter != nil {
		defer limiter.Stop()
	}

	// --- 8. Routes ---
	api.SetupRoutes(router, appConfig, zapLogger, backend.provider, services)
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	// --- 9. Start HTTP server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 10. Graceful shutdown ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully.")
}
