package service

import (
	"context"

	"github.com/smallbiznis/meterdash/internal/metering"
	spend "github.com/smallbiznis/meterdash/internal/spend/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type draftInvoiceLister interface {
	ListDraftInvoices(ctx context.Context, customerID string, opts ...metering.CallOption) ([]metering.DraftInvoice, error)
}

type Params struct {
	fx.In

	Metering *metering.Client
	Log      *zap.Logger
}

type Service struct {
	api draftInvoiceLister
	log *zap.Logger
}

func NewService(p Params) spend.Service {
	return &Service{
		api: p.Metering,
		log: p.Log.Named("spend.service"),
	}
}

func (s *Service) GetSpend(ctx context.Context, req spend.SpendRequest) (spend.SpendResponse, error) {
	if req.CustomerID == "" {
		return spend.SpendResponse{}, spend.ErrInvalidCustomer
	}

	invoices, err := s.api.ListDraftInvoices(ctx, req.CustomerID)
	if err != nil {
		return spend.SpendResponse{}, err
	}

	return spend.SpendResponse{Classification: spend.Classify(invoices)}, nil
}
