package metering

import (
	"context"
	"net/url"
	"time"
)

// ListBreakdownsRequest selects invoice breakdown buckets for a window.
type ListBreakdownsRequest struct {
	CustomerID   string
	Granularity  string
	StartingOn   time.Time
	EndingBefore time.Time
}

// ListInvoiceBreakdowns drains the time-bucketed usage breakdowns for the window.
func (c *Client) ListInvoiceBreakdowns(ctx context.Context, req ListBreakdownsRequest, opts ...CallOption) ([]UsageBreakdown, error) {
	granularity := req.Granularity
	if granularity == "" {
		granularity = "day"
	}
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[UsageBreakdown], error) {
		query := url.Values{}
		query.Set("window_size", granularity)
		query.Set("starting_on", req.StartingOn.UTC().Format(time.RFC3339))
		query.Set("ending_before", req.EndingBefore.UTC().Format(time.RFC3339))
		if cursor != "" {
			query.Set("next_page", cursor)
		}
		var page Page[UsageBreakdown]
		if err := c.getJSON(ctx, "/v1/customers/"+url.PathEscape(req.CustomerID)+"/invoices/breakdowns", query, &page, opts...); err != nil {
			return Page[UsageBreakdown]{}, err
		}
		return page, nil
	})
}

// ListDraftInvoices returns the customer's in-progress invoices.
func (c *Client) ListDraftInvoices(ctx context.Context, customerID string, opts ...CallOption) ([]DraftInvoice, error) {
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[DraftInvoice], error) {
		query := url.Values{}
		query.Set("status", "DRAFT")
		if cursor != "" {
			query.Set("next_page", cursor)
		}
		var page Page[DraftInvoice]
		if err := c.getJSON(ctx, "/v1/customers/"+url.PathEscape(customerID)+"/invoices", query, &page, opts...); err != nil {
			return Page[DraftInvoice]{}, err
		}
		return page, nil
	})
}
