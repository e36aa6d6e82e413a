package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/models"
)

// SuggestionHandler handles submission and moderation of suggestions.
type SuggestionHandler struct {
	suggestionService core.SuggestionService
}

func NewSuggestionHandler(ss core.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: ss}
}

// CreateSuggestion handles POST /sugestoes
func (h *SuggestionHandler) CreateSuggestion(c *gin.Context) {
	var req models.CreateSuggestionRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.suggestionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{ID: id, Message: "Sugestão enviada com sucesso."})
}

// ListSuggestions handles GET /sugestoes
func (h *SuggestionHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.suggestionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// ApproveSuggestion handles POST /sugestoes/aprovar/:id
func (h *SuggestionHandler) ApproveSuggestion(c *gin.Context) {
	pointID, err := h.suggestionService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ApproveResponse{Message: "Sugestão aprovada e ecoponto criado.", EcoID: pointID})
}

// RejectSuggestion handles POST /sugestoes/rejeitar/:id
func (h *SuggestionHandler) RejectSuggestion(c *gin.Context) {
	if err := h.suggestionService.Reject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusMessage{Message: "Sugestão rejeitada."})
}
