package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/meterdash/internal/metering"
	usagedomain "github.com/smallbiznis/meterdash/internal/usage/domain"
)

func (s *Server) GetUsage(c *gin.Context) {
	resp, err := s.usageSvc.GetUsage(c.Request.Context(), usagedomain.GetUsageRequest{
		CustomerID: c.Param("customerID"),
		GroupKey:   strings.TrimSpace(c.Query("group_key")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type ingestEventRequest struct {
	EventType     string         `json:"event_type"`
	TransactionID string         `json:"transaction_id"`
	Timestamp     *time.Time     `json:"timestamp"`
	Properties    map[string]any `json:"properties"`
}

func (s *Server) IngestUsageEvent(c *gin.Context) {
	var req ingestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := usagedomain.IngestEventRequest{
		CustomerID:    c.Param("customerID"),
		EventType:     strings.TrimSpace(req.EventType),
		TransactionID: strings.TrimSpace(req.TransactionID),
		Properties:    req.Properties,
	}
	if req.Timestamp != nil {
		domainReq.Timestamp = *req.Timestamp
	}

	resp, err := s.usageSvc.IngestEvent(c.Request.Context(), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"data": resp})
}

type previewEventsRequest struct {
	Events []metering.UsageEvent `json:"events"`
}

func (s *Server) PreviewUsageEvents(c *gin.Context) {
	var req previewEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.usageSvc.PreviewEvents(c.Request.Context(), usagedomain.PreviewRequest{
		CustomerID: c.Param("customerID"),
		Events:     req.Events,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
