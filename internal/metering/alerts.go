package metering

import (
	"context"
	"net/url"
)

// ListCustomerAlerts returns every alert evaluated for the customer.
func (c *Client) ListCustomerAlerts(ctx context.Context, customerID string, opts ...CallOption) ([]AlertRecord, error) {
	var out struct {
		Data []AlertRecord `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/customers/"+url.PathEscape(customerID)+"/alerts", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateAlertRequest defines a new threshold alert for one customer.
type CreateAlertRequest struct {
	CustomerID string  `json:"customer_id"`
	AlertType  string  `json:"alert_type"`
	Name       string  `json:"name"`
	Threshold  float64 `json:"threshold"`
}

// CreateAlert creates a threshold alert and returns its identifier.
func (c *Client) CreateAlert(ctx context.Context, req CreateAlertRequest, opts ...CallOption) (string, error) {
	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/v1/alerts/create", req, &out, opts...); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

// ArchiveAlert retires an alert.
func (c *Client) ArchiveAlert(ctx context.Context, alertID string, opts ...CallOption) error {
	body := map[string]string{"id": alertID}
	return c.postJSON(ctx, "/v1/alerts/archive", body, nil, opts...)
}
