package metering

import (
	"net/http"

	"github.com/smallbiznis/meterdash/internal/config"
	"github.com/smallbiznis/meterdash/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("metering.client",
	fx.Provide(NewFromConfig),
)

type Params struct {
	fx.In

	Cfg     config.Config
	Metrics *metrics.Metrics `optional:"true"`
}

// NewFromConfig builds the API client from application configuration.
func NewFromConfig(p Params) (*Client, error) {
	var recorder Recorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	return NewClient(Config{
		BaseURL:    p.Cfg.Metering.BaseURL,
		APIKey:     p.Cfg.Metering.APIKey,
		HTTPClient: &http.Client{Timeout: p.Cfg.Metering.Timeout},
		Retry:      RetryConfig{MaxAttempts: p.Cfg.Metering.MaxAttempts},
		Recorder:   recorder,
	})
}
