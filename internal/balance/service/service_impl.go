package service

import (
	"context"

	balance "github.com/smallbiznis/meterdash/internal/balance/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// grantLister is the slice of the metering client this service consumes.
type grantLister interface {
	ListGrants(ctx context.Context, req metering.ListGrantsRequest, opts ...metering.CallOption) ([]metering.Grant, error)
}

type Params struct {
	fx.In

	Metering *metering.Client
	Log      *zap.Logger
}

type Service struct {
	api grantLister
	log *zap.Logger
}

func NewService(p Params) balance.Service {
	return &Service{
		api: p.Metering,
		log: p.Log.Named("balance.service"),
	}
}

func (s *Service) GetBalances(ctx context.Context, req balance.BalancesRequest) (balance.BalancesResponse, error) {
	if req.CustomerID == "" {
		return balance.BalancesResponse{}, balance.ErrInvalidCustomer
	}

	grants, err := s.api.ListGrants(ctx, metering.ListGrantsRequest{
		CustomerID:              req.CustomerID,
		CoveringDate:            req.CoveringDate,
		IncludeLedgers:          true,
		IncludeContractBalances: true,
	})
	if err != nil {
		return balance.BalancesResponse{}, err
	}

	resp := balance.BalancesResponse{
		CurrencyName: balance.DefaultCurrencyName,
		CurrencyID:   balance.DefaultCurrencyID,
		Grants:       make([]balance.GrantBalance, 0, len(grants)),
	}

	for i, g := range grants {
		// The first grant labels the whole response. Mixed-currency
		// customers keep that label for every total.
		if i == 0 && g.CreditType.Name != "" {
			resp.CurrencyName = g.CreditType.Name
			resp.CurrencyID = g.CreditType.ID
		}

		gb := balance.GrantBalance{
			ID:          g.ID,
			Type:        g.Type,
			ProductName: g.ProductName,
		}
		for _, item := range g.AccessScheduleItems {
			gb.Granted += item.Amount
		}
		for _, entry := range g.LedgerEntries {
			// Positive entries are issuance, not spend.
			if entry.Amount < 0 {
				gb.Used += -entry.Amount
			}
		}
		// Remaining is deliberately not clamped at zero so that
		// over-drawn grants surface as negative balances.
		gb.Remaining = gb.Granted - gb.Used

		resp.TotalGranted += gb.Granted
		resp.TotalUsed += gb.Used
		resp.Grants = append(resp.Grants, gb)
	}
	resp.TotalRemaining = resp.TotalGranted - resp.TotalUsed

	return resp, nil
}
