package spend

import (
	"github.com/smallbiznis/meterdash/internal/spend/service"
	"go.uber.org/fx"
)

var Module = fx.Module("spend.service",
	fx.Provide(service.NewService),
)
