package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics times requests against their resolved route template, never
// the raw path, so cardinality stays bounded.
type HTTPMetrics struct {
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

func NewHTTPMetrics(cfg Config, provider metric.MeterProvider) (*HTTPMetrics, error) {
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "meterdash"
	}
	meter := provider.Meter(service + "/http")

	duration, err := meter.Float64Histogram("http.server.duration_ms")
	if err != nil {
		return nil, err
	}
	active, err := meter.Int64UpDownCounter("http.server.in_flight")
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{duration: duration, active: active}, nil
}

// GinMiddleware records duration and in-flight counts per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		route := routeLabel(c.FullPath())
		routeAttrs := metric.WithAttributes(FilterAttributes(attribute.String("endpoint", route))...)

		m.active.Add(ctx, 1, routeAttrs)
		start := time.Now()
		c.Next()
		m.active.Add(ctx, -1, routeAttrs)

		m.duration.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(FilterAttributes(
			attribute.String("endpoint", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)...))
	}
}

func routeLabel(route string) string {
	if strings.TrimSpace(route) == "" {
		return "unknown"
	}
	return route
}
