package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/config"
	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/middleware"
	"ecopontos-backend-go/internal/models"
)

// Services bundles the services the routes are served by.
type Services struct {
	CollectionPoints core.CollectionPointService
	Ratings          core.RatingService
	Suggestions      core.SuggestionService
	Users            core.UserService
	Diagnostics      core.DiagnosticsService
}

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (logging, recovery, CORS, rate limiting, metrics) is expected to be
// applied to router before this is called.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	provider identity.Provider,
	services Services,
) {
	useJSONFieldNames()
	authMW := middleware.NewAuthMiddleware(provider, logger.Named("auth"))

	pointHandler := NewCollectionPointHandler(services.CollectionPoints)
	ratingHandler := NewRatingHandler(services.Ratings)
	suggestionHandler := NewSuggestionHandler(services.Suggestions)
	userHandler := NewUserHandler(services.Users)
	diagnosticsHandler := NewDiagnosticsHandler(services.Diagnostics)

	ecopontos := router.Group("/ecopontos")
	{
		ecopontos.GET("", pointHandler.ListCollectionPoints)
		ecopontos.POST("", pointHandler.CreateCollectionPoint)
		ecopontos.GET("/:id", pointHandler.GetCollectionPoint)
		ecopontos.PUT("/:id", pointHandler.UpdateCollectionPoint)
		ecopontos.DELETE("/:id", pointHandler.DeleteCollectionPoint)
		ecopontos.GET("/:id/avaliacoes", ratingHandler.ListRatings)
	}
	router.POST("/avaliacoes/:eco_id", ratingHandler.AddRating)

	sugestoes := router.Group("/sugestoes")
	{
		sugestoes.GET("", suggestionHandler.ListSuggestions)
		sugestoes.POST("", suggestionHandler.CreateSuggestion)
		sugestoes.POST("/aprovar/:id", suggestionHandler.ApproveSuggestion)
		sugestoes.POST("/rejeitar/:id", suggestionHandler.RejectSuggestion)
	}

	router.POST("/register", userHandler.Register)
	router.GET("/users/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)

	if appConfig.EnableFullDB {
		router.GET("/full-db", diagnosticsHandler.FullDB)
	} else {
		logger.Info("GET /full-db is disabled")
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "UP", Message: "Ecopontos backend is healthy."})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: models.ErrorKindNotFound, Detail: "Rota não encontrada."})
	})

	logger.Info("API routes configured", zap.Bool("full_db_enabled", appConfig.EnableFullDB))
}
