package metering

import (
	"context"
	"net/url"
	"time"
)

// ListBillableMetrics returns the metrics applicable to the customer.
func (c *Client) ListBillableMetrics(ctx context.Context, customerID string, opts ...CallOption) ([]BillableMetric, error) {
	var out struct {
		Data []BillableMetric `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/customers/"+url.PathEscape(customerID)+"/billable-metrics", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetBillableMetric retrieves one billable metric definition.
func (c *Client) GetBillableMetric(ctx context.Context, metricID string, opts ...CallOption) (BillableMetric, error) {
	var out struct {
		Data BillableMetric `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/billable-metrics/"+url.PathEscape(metricID), nil, &out, opts...); err != nil {
		return BillableMetric{}, err
	}
	return out.Data, nil
}

// ListUsageRequest selects grouped usage for one metric over a date range.
type ListUsageRequest struct {
	CustomerID   string
	MetricID     string
	GroupKey     string
	StartingOn   time.Time
	EndingBefore time.Time
}

type listUsageBody struct {
	CustomerID       string  `json:"customer_id"`
	BillableMetricID string  `json:"billable_metric_id"`
	StartingOn       string  `json:"starting_on"`
	EndingBefore     string  `json:"ending_before"`
	GroupBy          *string `json:"group_by,omitempty"`
	NextPage         string  `json:"next_page,omitempty"`
}

// ListUsageWithGroups drains grouped usage rows for one billable metric.
func (c *Client) ListUsageWithGroups(ctx context.Context, req ListUsageRequest, opts ...CallOption) ([]UsageGroupRow, error) {
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[UsageGroupRow], error) {
		body := listUsageBody{
			CustomerID:       req.CustomerID,
			BillableMetricID: req.MetricID,
			StartingOn:       req.StartingOn.UTC().Format(time.RFC3339),
			EndingBefore:     req.EndingBefore.UTC().Format(time.RFC3339),
			NextPage:         cursor,
		}
		if req.GroupKey != "" {
			key := req.GroupKey
			body.GroupBy = &key
		}
		var page Page[UsageGroupRow]
		if err := c.postJSON(ctx, "/v1/usage/groups", body, &page, opts...); err != nil {
			return Page[UsageGroupRow]{}, err
		}
		return page, nil
	})
}

// IngestUsageEvent submits one raw usage event.
func (c *Client) IngestUsageEvent(ctx context.Context, event UsageEvent, opts ...CallOption) error {
	return c.postJSON(ctx, "/v1/ingest", []UsageEvent{event}, nil, opts...)
}

// PreviewEvents prices hypothetical events without recording them.
func (c *Client) PreviewEvents(ctx context.Context, customerID string, events []UsageEvent, opts ...CallOption) (PreviewResult, error) {
	body := struct {
		CustomerID string       `json:"customer_id"`
		Events     []UsageEvent `json:"events"`
	}{CustomerID: customerID, Events: events}
	var out struct {
		Data PreviewResult `json:"data"`
	}
	if err := c.postJSON(ctx, "/v1/previewEvents", body, &out, opts...); err != nil {
		return PreviewResult{}, err
	}
	return out.Data, nil
}
