package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/meterdash/internal/metering"
	subscription "github.com/smallbiznis/meterdash/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultRechargeName = "Recharge"

type contractAPI interface {
	ListContracts(ctx context.Context, customerID string, opts ...metering.CallOption) ([]metering.Contract, error)
	EditContract(ctx context.Context, req metering.EditContractRequest, opts ...metering.CallOption) error
}

type Params struct {
	fx.In

	Metering *metering.Client
	Log      *zap.Logger
}

type Service struct {
	api contractAPI
	log *zap.Logger
}

func NewService(p Params) subscription.Service {
	return &Service{
		api: p.Metering,
		log: p.Log.Named("subscription.service"),
	}
}

func (s *Service) ListContracts(ctx context.Context, req subscription.ListContractsRequest) (subscription.ListContractsResponse, error) {
	if req.CustomerID == "" {
		return subscription.ListContractsResponse{}, subscription.ErrInvalidCustomer
	}
	contracts, err := s.api.ListContracts(ctx, req.CustomerID)
	if err != nil {
		return subscription.ListContractsResponse{}, err
	}
	return subscription.ListContractsResponse{Contracts: contracts}, nil
}

func (s *Service) CreateRechargeCommit(ctx context.Context, req subscription.RechargeRequest) error {
	if req.CustomerID == "" {
		return subscription.ErrInvalidCustomer
	}
	if req.ContractID == "" {
		return subscription.ErrInvalidContract
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return subscription.ErrInvalidAmount
	}

	name := req.Name
	if name == "" {
		name = defaultRechargeName
	}

	if err := s.api.EditContract(ctx, metering.EditContractRequest{
		ContractID: req.ContractID,
		CustomerID: req.CustomerID,
		AddCommits: []metering.AddCommit{{
			Type:   "prepaid",
			Name:   name,
			Amount: amount.InexactFloat64(),
		}},
	}); err != nil {
		return err
	}

	s.log.Info("recharge commit created",
		zap.String("customer_id", req.CustomerID),
		zap.String("contract_id", req.ContractID),
		zap.String("amount", amount.String()),
	)
	return nil
}

func (s *Service) UpdateSeatQuantity(ctx context.Context, req subscription.SeatQuantityRequest) error {
	if req.CustomerID == "" {
		return subscription.ErrInvalidCustomer
	}
	if req.ContractID == "" {
		return subscription.ErrInvalidContract
	}
	if req.SubscriptionID == "" {
		return subscription.ErrInvalidSubscription
	}
	if req.Quantity <= 0 {
		return subscription.ErrInvalidQuantity
	}

	return s.api.EditContract(ctx, metering.EditContractRequest{
		ContractID: req.ContractID,
		CustomerID: req.CustomerID,
		UpdateSubscriptions: []metering.SubscriptionQuantityUpdate{{
			SubscriptionID: req.SubscriptionID,
			Quantity:       req.Quantity,
		}},
	})
}
