package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	alertsdomain "github.com/smallbiznis/meterdash/internal/alerts/domain"
	balancedomain "github.com/smallbiznis/meterdash/internal/balance/domain"
	costsdomain "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	spenddomain "github.com/smallbiznis/meterdash/internal/spend/domain"
	subscriptiondomain "github.com/smallbiznis/meterdash/internal/subscription/domain"
)

type overviewSection struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type overviewResponse struct {
	Balances  overviewSection `json:"balances"`
	Costs     overviewSection `json:"costs"`
	Spend     overviewSection `json:"spend"`
	Alerts    overviewSection `json:"alerts"`
	Contracts overviewSection `json:"contracts"`
}

// GetOverview fetches every dashboard section in parallel. Sections fail
// independently; one broken upstream call degrades its card, not the page.
func (s *Server) GetOverview(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := c.Param("customerID")

	var resp overviewResponse
	var wg sync.WaitGroup

	run := func(section *overviewSection, name string, fetch func(ctx context.Context) (any, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := fetch(ctx)
			if err != nil {
				*section = overviewSection{Status: "error", Message: metering.ErrorMessage(err)}
			} else {
				*section = overviewSection{Status: "ok", Data: data}
			}
			if s.obsMetrics != nil {
				s.obsMetrics.RecordOverviewSection(ctx, name, section.Status)
			}
		}()
	}

	run(&resp.Balances, "balances", func(ctx context.Context) (any, error) {
		return s.balanceSvc.GetBalances(ctx, balancedomain.BalancesRequest{
			CustomerID:   customerID,
			CoveringDate: s.clock.Now(),
		})
	})
	run(&resp.Costs, "costs", func(ctx context.Context) (any, error) {
		return s.costsSvc.GetCosts(ctx, costsdomain.CostsRequest{CustomerID: customerID})
	})
	run(&resp.Spend, "spend", func(ctx context.Context) (any, error) {
		return s.spendSvc.GetSpend(ctx, spenddomain.SpendRequest{CustomerID: customerID})
	})
	run(&resp.Alerts, "alerts", func(ctx context.Context) (any, error) {
		return s.alertsSvc.GetAlerts(ctx, alertsdomain.GetAlertsRequest{CustomerID: customerID})
	})
	run(&resp.Contracts, "contracts", func(ctx context.Context) (any, error) {
		out, err := s.subscriptionSvc.ListContracts(ctx, subscriptiondomain.ListContractsRequest{CustomerID: customerID})
		if err != nil {
			return nil, err
		}
		return out.Contracts, nil
	})

	wg.Wait()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
