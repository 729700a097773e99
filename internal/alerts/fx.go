package alerts

import (
	"github.com/smallbiznis/meterdash/internal/alerts/service"
	"go.uber.org/fx"
)

var Module = fx.Module("alerts.service",
	fx.Provide(service.NewService),
)
