package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/models"
)

// RecoveryMiddleware recovers from panics in handlers, logs the panic with its stack
// trace and answers 500 with the standard error body.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RecoveryMiddleware requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("stacktrace", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				// Headers may already be out.
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, models.ErrorResponse{
						Error:  models.ErrorKindUpstream,
						Detail: "Erro interno do servidor.",
					})
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
