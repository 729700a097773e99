package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var embeddableDashboards = map[string]bool{
	"invoices": true,
	"usage":    true,
	"credits":  true,
}

// GetEmbeddableDashboardURL proxies the upstream's short-lived embeddable
// dashboard URL so the frontend never sees the API key.
func (s *Server) GetEmbeddableDashboardURL(c *gin.Context) {
	dashboard := strings.TrimSpace(c.Query("type"))
	if !embeddableDashboards[dashboard] {
		AbortWithError(c, newValidationError("type", "invalid_dashboard_type", "invalid dashboard type"))
		return
	}

	url, err := s.meteringClient.GetEmbeddableDashboardURL(c.Request.Context(), c.Param("customerID"), dashboard)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"url": url}})
}
