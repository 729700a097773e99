package metering

import "context"

// ListContracts drains the customer's contracts (v2 endpoint).
func (c *Client) ListContracts(ctx context.Context, customerID string, opts ...CallOption) ([]Contract, error) {
	return Paginate(ctx, func(ctx context.Context, cursor string) (Page[Contract], error) {
		body := struct {
			CustomerID string `json:"customer_id"`
			NextPage   string `json:"next_page,omitempty"`
		}{CustomerID: customerID, NextPage: cursor}
		var page Page[Contract]
		if err := c.postJSON(ctx, "/v2/contracts/list", body, &page, opts...); err != nil {
			return Page[Contract]{}, err
		}
		return page, nil
	})
}

// AddCommit describes a commit appended to a contract, e.g. a recharge.
type AddCommit struct {
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
}

// SubscriptionQuantityUpdate changes the seat count on one subscription.
type SubscriptionQuantityUpdate struct {
	SubscriptionID string  `json:"subscription_id"`
	Quantity       float64 `json:"quantity"`
}

// EditContractRequest mutates an existing contract (v2 endpoint).
type EditContractRequest struct {
	ContractID          string                       `json:"contract_id"`
	CustomerID          string                       `json:"customer_id"`
	AddCommits          []AddCommit                  `json:"add_commits,omitempty"`
	UpdateSubscriptions []SubscriptionQuantityUpdate `json:"update_subscriptions,omitempty"`
}

// EditContract applies commit additions and subscription updates to a contract.
func (c *Client) EditContract(ctx context.Context, req EditContractRequest, opts ...CallOption) error {
	return c.postJSON(ctx, "/v2/contracts/edit", req, nil, opts...)
}
