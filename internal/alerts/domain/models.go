package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/meterdash/internal/metering"
)

// Upstream alert type literals the dashboard surfaces.
const (
	BalanceAlertType = "low_remaining_contract_credit_and_commit_balance_reached"
	SpendAlertType   = "spend_threshold_reached"
)

// AlertPair holds the customer's balance and spend alerts. Either side is nil
// when no alert of that type exists.
type AlertPair struct {
	Balance *metering.AlertRecord `json:"balance"`
	Spend   *metering.AlertRecord `json:"spend"`
}

type GetAlertsRequest struct {
	CustomerID string
}

type CreateAlertRequest struct {
	CustomerID string
	AlertType  string
	Name       string
	Threshold  string
}

type ArchiveAlertRequest struct {
	CustomerID string
	AlertID    string
}

type Service interface {
	GetAlerts(ctx context.Context, req GetAlertsRequest) (AlertPair, error)
	CreateAlert(ctx context.Context, req CreateAlertRequest) (string, error)
	ArchiveAlert(ctx context.Context, req ArchiveAlertRequest) error
}

var (
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidAlertID   = errors.New("invalid_alert_id")
	ErrInvalidAlertType = errors.New("invalid_alert_type")
	ErrInvalidThreshold = errors.New("invalid_threshold")
)
