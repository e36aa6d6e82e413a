package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/models"
)

// CollectionPointHandler handles the /ecopontos endpoints.
type CollectionPointHandler struct {
	pointService core.CollectionPointService
}

// NewCollectionPointHandler creates a new CollectionPointHandler.
func NewCollectionPointHandler(ps core.CollectionPointService) *CollectionPointHandler {
	return &CollectionPointHandler{pointService: ps}
}

// ListCollectionPoints handles GET /ecopontos
func (h *CollectionPointHandler) ListCollectionPoints(c *gin.Context) {
	points, err := h.pointService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetCollectionPoint handles GET /ecopontos/:id
func (h *CollectionPointHandler) GetCollectionPoint(c *gin.Context) {
	point, err := h.pointService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

// CreateCollectionPoint handles POST /ecopontos
func (h *CollectionPointHandler) CreateCollectionPoint(c *gin.Context) {
	var req models.CreateCollectionPointRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.pointService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{ID: id, Message: "Ecoponto criado com sucesso."})
}

// UpdateCollectionPoint handles PUT /ecopontos/:id. Only the fields present in the body
// are written.
func (h *CollectionPointHandler) UpdateCollectionPoint(c *gin.Context) {
	var req models.UpdateCollectionPointRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if _, err := h.pointService.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{ID: id, Message: "Ecoponto atualizado com sucesso."})
}

// DeleteCollectionPoint handles DELETE /ecopontos/:id
func (h *CollectionPointHandler) DeleteCollectionPoint(c *gin.Context) {
	id := c.Param("id")
	if err := h.pointService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{ID: id, Message: "Ecoponto deletado com sucesso."})
}
