package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/config"
	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/metrics"
	"ecopontos-backend-go/internal/middleware"
)

// newLogger builds a development logger in debug mode and a production logger in
// release mode, at the configured level.
func newLogger(appConfig *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(appConfig.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", appConfig.LogLevel, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if strings.ToLower(appConfig.GinMode) == "release" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level
	return cfg.Build()
}

type backend struct {
	store    db.Store
	provider identity.Provider
}

// newBackend connects the configured store and identity provider.
func newBackend(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*backend, error) {
	switch appConfig.StoreBackend {
	case config.StoreBackendMemory:
		tokens, err := config.ParseDevTokens(appConfig.AuthDevTokens)
		if err != nil {
			return nil, err
		}
		identities := make(map[string]identity.Identity, len(tokens))
		for _, t := range tokens {
			identities[t.Token] = identity.Identity{UID: t.UID, Email: t.Email}
		}
		logger.Warn("Using the in-memory store; data is lost on exit",
			zap.Int("devTokens", len(identities)))
		return &backend{store: db.NewMemoryStore(), provider: identity.NewStatic(identities)}, nil

	case config.StoreBackendFirebase:
		platform, err := db.InitFirebase(ctx, appConfig, logger)
		if err != nil {
			return nil, err
		}
		store, err := db.NewFirebaseStore(platform.Database)
		if err != nil {
			return nil, err
		}
		provider, err := identity.NewFirebase(platform.Auth, logger.Named("identity"))
		if err != nil {
			return nil, err
		}
		return &backend{store: store, provider: provider}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", appConfig.StoreBackend)
	}
}

// useGlobalMiddleware installs the middleware every request passes through. Metrics sit
// outside recovery so a recovered panic is still counted as a 500. The returned rate
// limiter is nil when rate limiting is off.
func useGlobalMiddleware(router *gin.Engine, appConfig *config.Config, logger *zap.Logger, collector *metrics.Collector) *middleware.RateLimiter {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RequestMetrics(collector))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(appConfig))

	if appConfig.RateLimitRPS <= 0 {
		return nil
	}
	limiter := middleware.NewRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst, 5*time.Minute, collector, logger)
	router.Use(limiter.Middleware())
	logger.Info("Rate limiting enabled",
		zap.Float64("rps", appConfig.RateLimitRPS),
		zap.Int("burst", appConfig.RateLimitBurst))
	return limiter
}
