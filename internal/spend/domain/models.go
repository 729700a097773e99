package domain

import (
	"context"
	"errors"
)

// Commit application buckets.
const (
	KeyBalanceDrawdown = "Balance Drawdown"
	KeyOverages        = "Overages"
)

// ProductSpend splits one product's current-period spend by whether a commit
// or credit was applied to each line.
type ProductSpend struct {
	Type            string  `json:"type"`
	Total           float64 `json:"total"`
	BalanceDrawdown float64 `json:"balance_drawdown"`
	Overages        float64 `json:"overages"`
}

type Classification struct {
	TotalByCurrency         map[string]float64      `json:"total_by_currency"`
	ProductTotals           map[string]ProductSpend `json:"product_totals"`
	CommitApplicationTotals map[string]float64      `json:"commit_application_totals"`
}

type SpendRequest struct {
	CustomerID string
}

type SpendResponse struct {
	Classification
}

type Service interface {
	GetSpend(ctx context.Context, req SpendRequest) (SpendResponse, error)
}

var ErrInvalidCustomer = errors.New("invalid_customer")
