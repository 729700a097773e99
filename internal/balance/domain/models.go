package domain

import (
	"context"
	"errors"
	"time"
)

// DefaultCurrencyName is used when the customer has no grants at all.
const DefaultCurrencyName = "USD"

// DefaultCurrencyID is the upstream credit-type id for USD (cents).
const DefaultCurrencyID = "2714e483-4ff1-48e4-9e25-ac732e8f24f2"

type BalancesRequest struct {
	CustomerID   string
	CoveringDate time.Time
}

// GrantBalance is the roll-up of a single credit grant.
type GrantBalance struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ProductName string  `json:"product_name"`
	Granted     float64 `json:"granted"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}

type BalancesResponse struct {
	TotalGranted   float64        `json:"total_granted"`
	TotalUsed      float64        `json:"total_used"`
	TotalRemaining float64        `json:"total_remaining"`
	CurrencyName   string         `json:"currency_name"`
	CurrencyID     string         `json:"currency_id"`
	Grants         []GrantBalance `json:"grants"`
}

type Service interface {
	GetBalances(ctx context.Context, req BalancesRequest) (BalancesResponse, error)
}

var ErrInvalidCustomer = errors.New("invalid_customer")
