package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/meterdash/internal/clock"
	"github.com/smallbiznis/meterdash/internal/config"
	costs "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBreakdownLister struct {
	buckets []metering.UsageBreakdown
	err     error
	lastReq metering.ListBreakdownsRequest
}

func (f *fakeBreakdownLister) ListInvoiceBreakdowns(_ context.Context, req metering.ListBreakdownsRequest, _ ...metering.CallOption) ([]metering.UsageBreakdown, error) {
	f.lastReq = req
	return f.buckets, f.err
}

type staticDashboard struct {
	cfg config.DashboardConfig
}

func (s staticDashboard) Get() config.DashboardConfig { return s.cfg }

func TestGetCostsUsesConfiguredWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	api := &fakeBreakdownLister{}

	svc := &Service{
		api:       api,
		dashboard: staticDashboard{cfg: config.DashboardConfig{UsageWindowDays: 7}},
		clock:     clock.NewFakeClock(now),
		log:       zap.NewNop(),
	}

	resp, err := svc.GetCosts(context.Background(), costs.CostsRequest{CustomerID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), resp.Window.Start)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), resp.Window.End)
	assert.Equal(t, "c1", api.lastReq.CustomerID)
	assert.Equal(t, resp.Window.Start, api.lastReq.StartingOn)
	assert.Equal(t, resp.Window.End, api.lastReq.EndingBefore)
}

func TestGetCostsNormalizesBuckets(t *testing.T) {
	api := &fakeBreakdownLister{buckets: []metering.UsageBreakdown{
		{
			Type:        "day",
			PeriodStart: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			Total:       12,
			LineItems: []metering.LineItem{{
				Name:           "API Calls - Tier 2",
				ProductType:    "UsageProductListItem",
				Total:          12,
				CreditTypeName: "USD (cents)",
			}},
		},
	}}

	svc := &Service{
		api:       api,
		dashboard: staticDashboard{cfg: config.DashboardConfig{UsageWindowDays: 30}},
		clock:     clock.NewFakeClock(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)),
		log:       zap.NewNop(),
	}

	resp, err := svc.GetCosts(context.Background(), costs.CostsRequest{CustomerID: "c1"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 12.0, resp.Items[0].Values["API Calls"])
	assert.Equal(t, "USD (cents)", resp.CurrencyName)
}

func TestGetCostsRequiresCustomer(t *testing.T) {
	svc := &Service{
		api:       &fakeBreakdownLister{},
		dashboard: staticDashboard{cfg: config.DefaultDashboardConfig()},
		clock:     clock.NewFakeClock(time.Now()),
		log:       zap.NewNop(),
	}
	_, err := svc.GetCosts(context.Background(), costs.CostsRequest{})
	require.ErrorIs(t, err, costs.ErrInvalidCustomer)
}

func TestGetCostsPropagatesUpstreamError(t *testing.T) {
	boom := errors.New("upstream down")
	svc := &Service{
		api:       &fakeBreakdownLister{err: boom},
		dashboard: staticDashboard{cfg: config.DefaultDashboardConfig()},
		clock:     clock.NewFakeClock(time.Now()),
		log:       zap.NewNop(),
	}
	_, err := svc.GetCosts(context.Background(), costs.CostsRequest{CustomerID: "c1"})
	require.ErrorIs(t, err, boom)
}
