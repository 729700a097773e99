package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	balancedomain "github.com/smallbiznis/meterdash/internal/balance/domain"
)

func (s *Server) GetBalances(c *gin.Context) {
	coveringDate, err := parseOptionalTime(c.Query("covering_date"))
	if err != nil {
		AbortWithError(c, newValidationError("covering_date", "invalid_covering_date", "invalid covering_date"))
		return
	}

	req := balancedomain.BalancesRequest{CustomerID: c.Param("customerID")}
	if coveringDate != nil {
		req.CoveringDate = *coveringDate
	} else {
		req.CoveringDate = s.clock.Now()
	}

	resp, err := s.balanceSvc.GetBalances(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
