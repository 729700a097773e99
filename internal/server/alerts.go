package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	alertsdomain "github.com/smallbiznis/meterdash/internal/alerts/domain"
)

func (s *Server) GetAlerts(c *gin.Context) {
	resp, err := s.alertsSvc.GetAlerts(c.Request.Context(), alertsdomain.GetAlertsRequest{
		CustomerID: c.Param("customerID"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createAlertRequest struct {
	AlertType string `json:"alert_type"`
	Name      string `json:"name"`
	Threshold string `json:"threshold"`
}

func (s *Server) CreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := s.alertsSvc.CreateAlert(c.Request.Context(), alertsdomain.CreateAlertRequest{
		CustomerID: c.Param("customerID"),
		AlertType:  strings.TrimSpace(req.AlertType),
		Name:       strings.TrimSpace(req.Name),
		Threshold:  strings.TrimSpace(req.Threshold),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
}

func (s *Server) ArchiveAlert(c *gin.Context) {
	err := s.alertsSvc.ArchiveAlert(c.Request.Context(), alertsdomain.ArchiveAlertRequest{
		CustomerID: c.Param("customerID"),
		AlertID:    c.Param("alertID"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"archived": true}})
}
