package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/models"
)

const identityContextKey = "identity"

// AuthMiddleware authenticates requests against an identity.Provider.
type AuthMiddleware struct {
	provider identity.Provider
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. It panics if provider is nil, since
// authenticated routes cannot work without one.
func NewAuthMiddleware(provider identity.Provider, logger *zap.Logger) *AuthMiddleware {
	if provider == nil {
		panic("identity provider is not initialized for AuthMiddleware")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{provider: provider, logger: logger}
}

// VerifyToken verifies the bearer token from the Authorization header, or from the
// "token" query parameter when the header is absent, and stores the identity in the
// Gin context. Every failure answers 401 with the same detail.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Token de autenticação ausente.")
			return
		}

		id, err := m.provider.VerifyToken(c.Request.Context(), token)
		if err != nil {
			m.logger.Debug("Token verification failed", zap.Error(err), zap.String("path", c.FullPath()))
			unauthorized(c, "Token de autenticação inválido.")
			return
		}

		c.Set(identityContextKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by VerifyToken.
func IdentityFrom(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		token := c.Query("token")
		return token, token != ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:  models.ErrorKindUnauthorized,
		Detail: detail,
	})
}
