package service

import (
	"context"

	"github.com/smallbiznis/meterdash/internal/clock"
	"github.com/smallbiznis/meterdash/internal/config"
	costs "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type breakdownLister interface {
	ListInvoiceBreakdowns(ctx context.Context, req metering.ListBreakdownsRequest, opts ...metering.CallOption) ([]metering.UsageBreakdown, error)
}

type dashboardConfig interface {
	Get() config.DashboardConfig
}

type Params struct {
	fx.In

	Metering  *metering.Client
	Dashboard *config.DashboardConfigHolder
	Clock     clock.Clock
	Log       *zap.Logger
}

type Service struct {
	api       breakdownLister
	dashboard dashboardConfig
	clock     clock.Clock
	log       *zap.Logger
}

func NewService(p Params) costs.Service {
	return &Service{
		api:       p.Metering,
		dashboard: p.Dashboard,
		clock:     p.Clock,
		log:       p.Log.Named("costs.service"),
	}
}

func (s *Service) GetCosts(ctx context.Context, req costs.CostsRequest) (costs.CostsResponse, error) {
	if req.CustomerID == "" {
		return costs.CostsResponse{}, costs.ErrInvalidCustomer
	}

	window := costs.UsageWindow(s.clock.Now(), s.dashboard.Get().UsageWindowDays)

	buckets, err := s.api.ListInvoiceBreakdowns(ctx, metering.ListBreakdownsRequest{
		CustomerID:   req.CustomerID,
		StartingOn:   window.Start,
		EndingBefore: window.End,
	})
	if err != nil {
		return costs.CostsResponse{}, err
	}

	return costs.CostsResponse{
		Window:          window,
		NormalizedCosts: costs.Normalize(buckets),
	}, nil
}
