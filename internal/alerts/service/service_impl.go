package service

import (
	"context"

	alerts "github.com/smallbiznis/meterdash/internal/alerts/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type alertAPI interface {
	ListCustomerAlerts(ctx context.Context, customerID string, opts ...metering.CallOption) ([]metering.AlertRecord, error)
	CreateAlert(ctx context.Context, req metering.CreateAlertRequest, opts ...metering.CallOption) (string, error)
	ArchiveAlert(ctx context.Context, alertID string, opts ...metering.CallOption) error
}

type Params struct {
	fx.In

	Metering *metering.Client
	Log      *zap.Logger
}

type Service struct {
	api alertAPI
	log *zap.Logger
}

func NewService(p Params) alerts.Service {
	return &Service{
		api: p.Metering,
		log: p.Log.Named("alerts.service"),
	}
}

func (s *Service) GetAlerts(ctx context.Context, req alerts.GetAlertsRequest) (alerts.AlertPair, error) {
	if req.CustomerID == "" {
		return alerts.AlertPair{}, alerts.ErrInvalidCustomer
	}
	records, err := s.api.ListCustomerAlerts(ctx, req.CustomerID)
	if err != nil {
		return alerts.AlertPair{}, err
	}
	return alerts.Lookup(records), nil
}

func (s *Service) CreateAlert(ctx context.Context, req alerts.CreateAlertRequest) (string, error) {
	if req.CustomerID == "" {
		return "", alerts.ErrInvalidCustomer
	}
	if req.AlertType != alerts.BalanceAlertType && req.AlertType != alerts.SpendAlertType {
		return "", alerts.ErrInvalidAlertType
	}

	threshold, err := decimal.NewFromString(req.Threshold)
	if err != nil || !threshold.IsPositive() {
		return "", alerts.ErrInvalidThreshold
	}

	id, err := s.api.CreateAlert(ctx, metering.CreateAlertRequest{
		CustomerID: req.CustomerID,
		AlertType:  req.AlertType,
		Name:       req.Name,
		Threshold:  threshold.InexactFloat64(),
	})
	if err != nil {
		return "", err
	}

	s.log.Info("alert created",
		zap.String("customer_id", req.CustomerID),
		zap.String("alert_type", req.AlertType),
		zap.String("alert_id", id),
	)
	return id, nil
}

func (s *Service) ArchiveAlert(ctx context.Context, req alerts.ArchiveAlertRequest) error {
	if req.CustomerID == "" {
		return alerts.ErrInvalidCustomer
	}
	if req.AlertID == "" {
		return alerts.ErrInvalidAlertID
	}
	return s.api.ArchiveAlert(ctx, req.AlertID)
}
