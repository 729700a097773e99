package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	costsdomain "github.com/smallbiznis/meterdash/internal/costs/domain"
)

func (s *Server) GetCosts(c *gin.Context) {
	resp, err := s.costsSvc.GetCosts(c.Request.Context(), costsdomain.CostsRequest{
		CustomerID: c.Param("customerID"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
