package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/models"
)

// RatingHandler handles ratings of collection points.
type RatingHandler struct {
	ratingService core.RatingService
}

func NewRatingHandler(rs core.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: rs}
}

// AddRating handles POST /avaliacoes/:eco_id
func (h *RatingHandler) AddRating(c *gin.Context) {
	var req models.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.ratingService.AddRating(c.Request.Context(), c.Param("eco_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{ID: id, Message: "Avaliação adicionada com sucesso."})
}

// ListRatings handles GET /ecopontos/:id/avaliacoes
func (h *RatingHandler) ListRatings(c *gin.Context) {
	ratings, err := h.ratingService.ListRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}
