package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/middleware"
	"ecopontos-backend-go/internal/models"
)

// UserHandler handles registration and profile endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// Register handles POST /register. It creates the account at the identity provider
// and stores the profile.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetCurrentUserProfile handles GET /users/me. The email comes from the verified token.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		// Only reachable if the route was registered without the auth middleware.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:  models.ErrorKindUnauthorized,
			Detail: "Token de autenticação ausente.",
		})
		return
	}

	user, err := h.userService.Me(c.Request.Context(), id.UID, id.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
