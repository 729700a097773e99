package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/smallbiznis/meterdash/internal/subscription/domain"
)

func (s *Server) ListContracts(c *gin.Context) {
	resp, err := s.subscriptionSvc.ListContracts(c.Request.Context(), subscriptiondomain.ListContractsRequest{
		CustomerID: c.Param("customerID"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Contracts})
}

type rechargeRequest struct {
	Amount string `json:"amount"`
	Name   string `json:"name"`
}

func (s *Server) CreateRechargeCommit(c *gin.Context) {
	var req rechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.subscriptionSvc.CreateRechargeCommit(c.Request.Context(), subscriptiondomain.RechargeRequest{
		CustomerID: c.Param("customerID"),
		ContractID: c.Param("contractID"),
		Amount:     strings.TrimSpace(req.Amount),
		Name:       strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "created"}})
}

type seatQuantityRequest struct {
	SubscriptionID string  `json:"subscription_id"`
	Quantity       float64 `json:"quantity"`
}

func (s *Server) UpdateSeatQuantity(c *gin.Context) {
	var req seatQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.subscriptionSvc.UpdateSeatQuantity(c.Request.Context(), subscriptiondomain.SeatQuantityRequest{
		CustomerID:     c.Param("customerID"),
		ContractID:     c.Param("contractID"),
		SubscriptionID: strings.TrimSpace(req.SubscriptionID),
		Quantity:       req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "updated"}})
}
