package metering

import (
	"context"
	"time"
)

// ListGrantsRequest selects the grants covering a customer at a point in time.
type ListGrantsRequest struct {
	CustomerID              string
	CoveringDate            time.Time
	IncludeArchived         bool
	IncludeLedgers          bool
	IncludeContractBalances bool
}

type listGrantsBody struct {
	CustomerIDs             []string `json:"customer_ids"`
	CoveringDate            string   `json:"covering_date"`
	IncludeArchived         bool     `json:"include_archived"`
	IncludeLedgers          bool     `json:"include_ledgers"`
	IncludeContractBalances bool     `json:"include_contract_balances"`
	NextPage                string   `json:"next_page,omitempty"`
}

// ListGrants drains every balance grant for the customer.
func (c *Client) ListGrants(ctx context.Context, req ListGrantsRequest, opts ...CallOption) ([]Grant, error) {
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[Grant], error) {
		body := listGrantsBody{
			CustomerIDs:             []string{req.CustomerID},
			CoveringDate:            req.CoveringDate.UTC().Format(time.RFC3339),
			IncludeArchived:         req.IncludeArchived,
			IncludeLedgers:          req.IncludeLedgers,
			IncludeContractBalances: req.IncludeContractBalances,
			NextPage:                cursor,
		}
		var page Page[Grant]
		if err := c.postJSON(ctx, "/v1/credits/listGrants", body, &page, opts...); err != nil {
			return Page[Grant]{}, err
		}
		return page, nil
	})
}
