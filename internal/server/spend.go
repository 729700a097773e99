package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	spenddomain "github.com/smallbiznis/meterdash/internal/spend/domain"
)

func (s *Server) GetSpend(c *gin.Context) {
	resp, err := s.spendSvc.GetSpend(c.Request.Context(), spenddomain.SpendRequest{
		CustomerID: c.Param("customerID"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
