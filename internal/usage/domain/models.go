package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/meterdash/internal/metering"
)

// MetricUsage is the grouped usage for one billable metric. When fetching a
// metric fails, Error holds the upstream message and the aggregates are zero;
// other metrics are unaffected.
type MetricUsage struct {
	MetricID   string                   `json:"metric_id"`
	MetricName string                   `json:"metric_name"`
	GroupKeys  []string                 `json:"group_keys"`
	Total      float64                  `json:"total"`
	Groups     []metering.UsageGroupRow `json:"groups"`
	Error      string                   `json:"error,omitempty"`
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type GetUsageRequest struct {
	CustomerID string
	// GroupKey overrides the per-metric default group key when set.
	GroupKey string
}

type GetUsageResponse struct {
	Window  Window        `json:"window"`
	Metrics []MetricUsage `json:"metrics"`
}

type IngestEventRequest struct {
	CustomerID    string
	EventType     string
	TransactionID string
	Timestamp     time.Time
	Properties    map[string]any
}

type IngestEventResponse struct {
	TransactionID string `json:"transaction_id"`
}

type PreviewRequest struct {
	CustomerID string
	Events     []metering.UsageEvent
}

type Service interface {
	GetUsage(ctx context.Context, req GetUsageRequest) (GetUsageResponse, error)
	IngestEvent(ctx context.Context, req IngestEventRequest) (IngestEventResponse, error)
	PreviewEvents(ctx context.Context, req PreviewRequest) (metering.PreviewResult, error)
}

var (
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidEventType = errors.New("invalid_event_type")
	ErrNoEvents         = errors.New("no_events")
)
