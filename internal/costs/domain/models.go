package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/meterdash/internal/metering"
)

// Window is the half-open UTC interval [Start, End) costs are reported over.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BucketSummary is one time bucket with its flattened roll-ups. Values maps
// both dimension values and normalized product names to summed totals; a
// product sharing a name with a dimension value overwrites it.
type BucketSummary struct {
	Total       float64             `json:"total"`
	PeriodStart time.Time           `json:"period_start"`
	Type        string              `json:"type"`
	LineItems   []metering.LineItem `json:"line_items"`
	Values      map[string]float64  `json:"values"`
}

// ProductGroupValues lists, per product and group key, every distinct group
// value seen, in first-seen order.
type ProductGroupValues map[string]map[string][]string

type NormalizedCosts struct {
	Products     ProductGroupValues `json:"products"`
	Items        []BucketSummary    `json:"items"`
	CurrencyName string             `json:"currency_name"`
}

type CostsRequest struct {
	CustomerID string
}

type CostsResponse struct {
	Window Window `json:"window"`
	NormalizedCosts
}

type Service interface {
	GetCosts(ctx context.Context, req CostsRequest) (CostsResponse, error)
}

var ErrInvalidCustomer = errors.New("invalid_customer")
