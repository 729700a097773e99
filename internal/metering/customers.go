package metering

import (
	"context"
	"net/url"
)

// ListCustomers drains the customer directory.
func (c *Client) ListCustomers(ctx context.Context, opts ...CallOption) ([]Customer, error) {
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[Customer], error) {
		query := url.Values{}
		if cursor != "" {
			query.Set("next_page", cursor)
		}
		var page Page[Customer]
		if err := c.getJSON(ctx, "/v1/customers", query, &page, opts...); err != nil {
			return Page[Customer]{}, err
		}
		return page, nil
	})
}
