package service

import (
	"context"
	"strings"

	customer "github.com/smallbiznis/meterdash/internal/customer/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type customerLister interface {
	ListCustomers(ctx context.Context, opts ...metering.CallOption) ([]metering.Customer, error)
}

type Params struct {
	fx.In

	Metering *metering.Client
	Log      *zap.Logger
}

type Service struct {
	api customerLister
	log *zap.Logger
}

func NewService(p Params) customer.Service {
	return &Service{
		api: p.Metering,
		log: p.Log.Named("customer.service"),
	}
}

// List drains the upstream directory. The search filter runs client side
// because the upstream list endpoint has no name filter.
func (s *Service) List(ctx context.Context, req customer.ListRequest) (customer.ListResponse, error) {
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		return customer.ListResponse{}, err
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	if search == "" {
		return customer.ListResponse{Customers: customers}, nil
	}

	filtered := make([]metering.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), search) {
			filtered = append(filtered, c)
		}
	}
	return customer.ListResponse{Customers: filtered}, nil
}
