package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/meterdash/internal/metering"
)

type ListContractsRequest struct {
	CustomerID string
}

type ListContractsResponse struct {
	Contracts []metering.Contract `json:"contracts"`
}

type RechargeRequest struct {
	CustomerID string
	ContractID string
	// Amount arrives as the raw form value and is validated as a positive
	// decimal before it reaches the upstream.
	Amount string
	Name   string
}

type SeatQuantityRequest struct {
	CustomerID     string
	ContractID     string
	SubscriptionID string
	Quantity       float64
}

type Service interface {
	ListContracts(ctx context.Context, req ListContractsRequest) (ListContractsResponse, error)
	CreateRechargeCommit(ctx context.Context, req RechargeRequest) error
	UpdateSeatQuantity(ctx context.Context, req SeatQuantityRequest) error
}

var (
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidContract     = errors.New("invalid_contract")
	ErrInvalidSubscription = errors.New("invalid_subscription")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
)
