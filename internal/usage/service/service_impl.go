package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/meterdash/internal/clock"
	"github.com/smallbiznis/meterdash/internal/config"
	costs "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	obsmetrics "github.com/smallbiznis/meterdash/internal/observability/metrics"
	"github.com/smallbiznis/meterdash/internal/ratelimit"
	usage "github.com/smallbiznis/meterdash/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type usageAPI interface {
	ListBillableMetrics(ctx context.Context, customerID string, opts ...metering.CallOption) ([]metering.BillableMetric, error)
	ListUsageWithGroups(ctx context.Context, req metering.ListUsageRequest, opts ...metering.CallOption) ([]metering.UsageGroupRow, error)
	IngestUsageEvent(ctx context.Context, event metering.UsageEvent, opts ...metering.CallOption) error
	PreviewEvents(ctx context.Context, customerID string, events []metering.UsageEvent, opts ...metering.CallOption) (metering.PreviewResult, error)
}

type dashboardConfig interface {
	Get() config.DashboardConfig
}

type Params struct {
	fx.In

	Metering  *metering.Client
	Dashboard *config.DashboardConfigHolder
	Clock     clock.Clock
	Limiter   *ratelimit.IngestLimiter `optional:"true"`
	Metrics   *obsmetrics.Metrics      `optional:"true"`
	Log       *zap.Logger
}

type Service struct {
	api       usageAPI
	dashboard dashboardConfig
	clock     clock.Clock
	limiter   *ratelimit.IngestLimiter
	metrics   *obsmetrics.Metrics
	log       *zap.Logger
}

func NewService(p Params) usage.Service {
	return &Service{
		api:       p.Metering,
		dashboard: p.Dashboard,
		clock:     p.Clock,
		limiter:   p.Limiter,
		metrics:   p.Metrics,
		log:       p.Log.Named("usage.service"),
	}
}

// GetUsage fetches grouped usage per billable metric. A metric that fails to
// load is reported with its error message instead of failing the whole call.
func (s *Service) GetUsage(ctx context.Context, req usage.GetUsageRequest) (usage.GetUsageResponse, error) {
	if req.CustomerID == "" {
		return usage.GetUsageResponse{}, usage.ErrInvalidCustomer
	}

	window := costs.UsageWindow(s.clock.Now(), s.dashboard.Get().UsageWindowDays)

	metricsList, err := s.api.ListBillableMetrics(ctx, req.CustomerID)
	if err != nil {
		return usage.GetUsageResponse{}, err
	}

	resp := usage.GetUsageResponse{
		Window:  usage.Window{Start: window.Start, End: window.End},
		Metrics: make([]usage.MetricUsage, 0, len(metricsList)),
	}

	for _, metric := range metricsList {
		mu := usage.MetricUsage{
			MetricID:   metric.ID,
			MetricName: metric.Name,
			GroupKeys:  metric.GroupKeys,
		}

		groupKey := req.GroupKey
		if groupKey == "" && len(metric.GroupKeys) > 0 {
			groupKey = metric.GroupKeys[0]
		}

		rows, err := s.api.ListUsageWithGroups(ctx, metering.ListUsageRequest{
			CustomerID:   req.CustomerID,
			MetricID:     metric.ID,
			GroupKey:     groupKey,
			StartingOn:   window.Start,
			EndingBefore: window.End,
		})
		if err != nil {
			s.log.Warn("metric usage fetch failed",
				zap.String("customer_id", req.CustomerID),
				zap.String("metric_id", metric.ID),
				zap.Error(err),
			)
			mu.Error = metering.ErrorMessage(err)
			resp.Metrics = append(resp.Metrics, mu)
			continue
		}

		mu.Groups = rows
		for _, row := range rows {
			mu.Total += row.Value
		}
		resp.Metrics = append(resp.Metrics, mu)
	}

	return resp, nil
}

func (s *Service) IngestEvent(ctx context.Context, req usage.IngestEventRequest) (usage.IngestEventResponse, error) {
	if req.CustomerID == "" {
		return usage.IngestEventResponse{}, usage.ErrInvalidCustomer
	}
	if req.EventType == "" {
		return usage.IngestEventResponse{}, usage.ErrInvalidEventType
	}

	res, err := s.limiter.Allow(ctx, req.CustomerID)
	if err != nil {
		// Redis being down must not take ingestion with it.
		s.log.Warn("ingest rate limiter unavailable", zap.Error(err))
	} else if !res.Allowed {
		if s.metrics != nil {
			s.metrics.RecordRateLimitDenied(ctx, "usage.ingest", "bucket_empty")
		}
		return usage.IngestEventResponse{}, &ratelimit.RateLimitedError{RetryAfter: res.RetryAfter}
	} else if s.metrics != nil {
		s.metrics.RecordRateLimitAllowed(ctx, "usage.ingest")
	}

	event := metering.UsageEvent{
		CustomerID:    req.CustomerID,
		EventType:     req.EventType,
		TransactionID: req.TransactionID,
		Timestamp:     req.Timestamp,
		Properties:    req.Properties,
	}
	if event.TransactionID == "" {
		event.TransactionID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}

	if err := s.api.IngestUsageEvent(ctx, event); err != nil {
		return usage.IngestEventResponse{}, err
	}
	return usage.IngestEventResponse{TransactionID: event.TransactionID}, nil
}

func (s *Service) PreviewEvents(ctx context.Context, req usage.PreviewRequest) (metering.PreviewResult, error) {
	if req.CustomerID == "" {
		return metering.PreviewResult{}, usage.ErrInvalidCustomer
	}
	if len(req.Events) == 0 {
		return metering.PreviewResult{}, usage.ErrNoEvents
	}
	return s.api.PreviewEvents(ctx, req.CustomerID, req.Events)
}
