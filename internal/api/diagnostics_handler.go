package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecopontos-backend-go/internal/core"
)

// DiagnosticsHandler exposes the raw store contents.
type DiagnosticsHandler struct {
	diagnosticsService core.DiagnosticsService
}

func NewDiagnosticsHandler(ds core.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnosticsService: ds}
}

// FullDB handles GET /full-db
func (h *DiagnosticsHandler) FullDB(c *gin.Context) {
	contents, err := h.diagnosticsService.Dump(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}
