package domain

import (
	"context"

	"github.com/smallbiznis/meterdash/internal/metering"
)

type ListRequest struct {
	// Search filters by customer name, case-insensitively, after trimming
	// surrounding whitespace. Empty means no filter.
	Search string
}

type ListResponse struct {
	Customers []metering.Customer `json:"customers"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
