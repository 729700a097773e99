package customer

import (
	"github.com/smallbiznis/meterdash/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
