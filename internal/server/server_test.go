package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	alertsdomain "github.com/smallbiznis/meterdash/internal/alerts/domain"
	balancedomain "github.com/smallbiznis/meterdash/internal/balance/domain"
	"github.com/smallbiznis/meterdash/internal/clock"
	costsdomain "github.com/smallbiznis/meterdash/internal/costs/domain"
	customerdomain "github.com/smallbiznis/meterdash/internal/customer/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/smallbiznis/meterdash/internal/ratelimit"
	spenddomain "github.com/smallbiznis/meterdash/internal/spend/domain"
	subscriptiondomain "github.com/smallbiznis/meterdash/internal/subscription/domain"
	usagedomain "github.com/smallbiznis/meterdash/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerSvc struct {
	resp customerdomain.ListResponse
	err  error
}

func (f *fakeCustomerSvc) List(_ context.Context, _ customerdomain.ListRequest) (customerdomain.ListResponse, error) {
	return f.resp, f.err
}

type fakeBalanceSvc struct {
	resp balancedomain.BalancesResponse
	err  error
}

func (f *fakeBalanceSvc) GetBalances(_ context.Context, _ balancedomain.BalancesRequest) (balancedomain.BalancesResponse, error) {
	return f.resp, f.err
}

type fakeCostsSvc struct {
	resp costsdomain.CostsResponse
	err  error
}

func (f *fakeCostsSvc) GetCosts(_ context.Context, _ costsdomain.CostsRequest) (costsdomain.CostsResponse, error) {
	return f.resp, f.err
}

type fakeSpendSvc struct {
	resp spenddomain.SpendResponse
	err  error
}

func (f *fakeSpendSvc) GetSpend(_ context.Context, _ spenddomain.SpendRequest) (spenddomain.SpendResponse, error) {
	return f.resp, f.err
}

type fakeAlertsSvc struct {
	pair      alertsdomain.AlertPair
	getErr    error
	createdID string
	createErr error
	lastReq   alertsdomain.CreateAlertRequest
}

func (f *fakeAlertsSvc) GetAlerts(_ context.Context, _ alertsdomain.GetAlertsRequest) (alertsdomain.AlertPair, error) {
	return f.pair, f.getErr
}

func (f *fakeAlertsSvc) CreateAlert(_ context.Context, req alertsdomain.CreateAlertRequest) (string, error) {
	f.lastReq = req
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createdID, nil
}

func (f *fakeAlertsSvc) ArchiveAlert(_ context.Context, _ alertsdomain.ArchiveAlertRequest) error {
	return nil
}

type fakeUsageSvc struct {
	usage     usagedomain.GetUsageResponse
	usageErr  error
	ingest    usagedomain.IngestEventResponse
	ingestErr error
	preview   metering.PreviewResult
}

func (f *fakeUsageSvc) GetUsage(_ context.Context, _ usagedomain.GetUsageRequest) (usagedomain.GetUsageResponse, error) {
	return f.usage, f.usageErr
}

func (f *fakeUsageSvc) IngestEvent(_ context.Context, _ usagedomain.IngestEventRequest) (usagedomain.IngestEventResponse, error) {
	return f.ingest, f.ingestErr
}

func (f *fakeUsageSvc) PreviewEvents(_ context.Context, _ usagedomain.PreviewRequest) (metering.PreviewResult, error) {
	return f.preview, nil
}

type fakeSubscriptionSvc struct {
	contracts []metering.Contract
	listErr   error
	actionErr error
}

func (f *fakeSubscriptionSvc) ListContracts(_ context.Context, _ subscriptiondomain.ListContractsRequest) (subscriptiondomain.ListContractsResponse, error) {
	return subscriptiondomain.ListContractsResponse{Contracts: f.contracts}, f.listErr
}

func (f *fakeSubscriptionSvc) CreateRechargeCommit(_ context.Context, _ subscriptiondomain.RechargeRequest) error {
	return f.actionErr
}

func (f *fakeSubscriptionSvc) UpdateSeatQuantity(_ context.Context, _ subscriptiondomain.SeatQuantityRequest) error {
	return f.actionErr
}

type testServerOptions struct {
	customers    *fakeCustomerSvc
	balances     *fakeBalanceSvc
	costs        *fakeCostsSvc
	spend        *fakeSpendSvc
	alerts       *fakeAlertsSvc
	usage        *fakeUsageSvc
	subscription *fakeSubscriptionSvc
	client       *metering.Client
}

func newTestServer(t *testing.T, opts testServerOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.customers == nil {
		opts.customers = &fakeCustomerSvc{}
	}
	if opts.balances == nil {
		opts.balances = &fakeBalanceSvc{}
	}
	if opts.costs == nil {
		opts.costs = &fakeCostsSvc{}
	}
	if opts.spend == nil {
		opts.spend = &fakeSpendSvc{}
	}
	if opts.alerts == nil {
		opts.alerts = &fakeAlertsSvc{}
	}
	if opts.usage == nil {
		opts.usage = &fakeUsageSvc{}
	}
	if opts.subscription == nil {
		opts.subscription = &fakeSubscriptionSvc{}
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:          engine,
		customerSvc:     opts.customers,
		balanceSvc:      opts.balances,
		costsSvc:        opts.costs,
		spendSvc:        opts.spend,
		alertsSvc:       opts.alerts,
		usageSvc:        opts.usage,
		subscriptionSvc: opts.subscription,
		meteringClient:  opts.client,
		clock:           clock.NewFakeClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)),
	}
	srv.registerAPIRoutes()

	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestListCustomers(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		customers: &fakeCustomerSvc{resp: customerdomain.ListResponse{
			Customers: []metering.Customer{{ID: "c1", Name: "Acme"}},
		}},
	})

	rec := doRequest(engine, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data []metering.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "Acme", payload.Data[0].Name)
}

func TestGetBalancesUpstreamErrorIsBadGateway(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		balances: &fakeBalanceSvc{err: &metering.APIError{Status: 500, Message: "billing shard down"}},
	})

	rec := doRequest(engine, http.MethodGet, "/api/customers/c1/balances", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "upstream_error", payload.Error.Type)
	assert.Equal(t, "billing shard down", payload.Error.Message, "upstream message passes through")
}

func TestCreateAlertValidationErrorIsBadRequest(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		alerts: &fakeAlertsSvc{createErr: alertsdomain.ErrInvalidThreshold},
	})

	rec := doRequest(engine, http.MethodPost, "/api/customers/c1/alerts",
		`{"alert_type":"spend_threshold_reached","threshold":"-5"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Code string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "validation_error", payload.Error.Type)
	require.Len(t, payload.Error.Errors, 1)
	assert.Equal(t, "invalid_threshold", payload.Error.Errors[0].Code)
}

func TestCreateAlert(t *testing.T) {
	alerts := &fakeAlertsSvc{createdID: "alert-1"}
	engine := newTestServer(t, testServerOptions{alerts: alerts})

	rec := doRequest(engine, http.MethodPost, "/api/customers/c1/alerts",
		`{"alert_type":"spend_threshold_reached","name":"Spend cap","threshold":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", alerts.lastReq.CustomerID)
	assert.Contains(t, rec.Body.String(), "alert-1")
}

func TestGetOverviewSectionsFailIndependently(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		balances: &fakeBalanceSvc{resp: balancedomain.BalancesResponse{TotalGranted: 150}},
		costs:    &fakeCostsSvc{err: &metering.APIError{Status: 502, Message: "breakdown timeout"}},
		spend:    &fakeSpendSvc{},
		alerts:   &fakeAlertsSvc{},
		subscription: &fakeSubscriptionSvc{
			contracts: []metering.Contract{{ID: "ct1"}},
		},
	})

	rec := doRequest(engine, http.MethodGet, "/api/customers/c1/overview", "")
	require.Equal(t, http.StatusOK, rec.Code, "a failing section must not fail the page")

	var payload struct {
		Data struct {
			Balances  overviewSection `json:"balances"`
			Costs     overviewSection `json:"costs"`
			Spend     overviewSection `json:"spend"`
			Alerts    overviewSection `json:"alerts"`
			Contracts overviewSection `json:"contracts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "ok", payload.Data.Balances.Status)
	assert.Equal(t, "error", payload.Data.Costs.Status)
	assert.Equal(t, "breakdown timeout", payload.Data.Costs.Message)
	assert.Equal(t, "ok", payload.Data.Spend.Status)
	assert.Equal(t, "ok", payload.Data.Alerts.Status)
	assert.Equal(t, "ok", payload.Data.Contracts.Status)
}

func TestIngestUsageEventRateLimited(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		usage: &fakeUsageSvc{ingestErr: &ratelimit.RateLimitedError{RetryAfter: 3 * time.Second}},
	})

	rec := doRequest(engine, http.MethodPost, "/api/customers/c1/usage/events",
		`{"event_type":"api_request"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))
}

func TestIngestUsageEvent(t *testing.T) {
	engine := newTestServer(t, testServerOptions{
		usage: &fakeUsageSvc{ingest: usagedomain.IngestEventResponse{TransactionID: "txn-1"}},
	})

	rec := doRequest(engine, http.MethodPost, "/api/customers/c1/usage/events",
		`{"event_type":"api_request"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "txn-1")
}

func TestGetEmbeddableDashboardURLValidatesType(t *testing.T) {
	engine := newTestServer(t, testServerOptions{})

	rec := doRequest(engine, http.MethodGet, "/api/customers/c1/dashboard-url?type=payments", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmbeddableDashboardURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"url":"https://embed.example/d/abc"}}`))
	}))
	defer upstream.Close()

	client, err := metering.NewClient(metering.Config{BaseURL: upstream.URL, APIKey: "test-key"})
	require.NoError(t, err)

	engine := newTestServer(t, testServerOptions{client: client})

	rec := doRequest(engine, http.MethodGet, "/api/customers/c1/dashboard-url?type=usage", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://embed.example/d/abc")
}
