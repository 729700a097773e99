package metering

import "context"

// GetEmbeddableDashboardURL returns a short-lived URL for an embeddable
// upstream dashboard (invoices, usage, credits).
func (c *Client) GetEmbeddableDashboardURL(ctx context.Context, customerID, dashboard string, opts ...CallOption) (string, error) {
	body := struct {
		CustomerID string `json:"customer_id"`
		Dashboard  string `json:"dashboard"`
	}{CustomerID: customerID, Dashboard: dashboard}
	var out struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/v1/dashboards/getEmbeddableUrl", body, &out, opts...); err != nil {
		return "", err
	}
	return out.Data.URL, nil
}
