package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/meterdash/internal/alerts"
	alertsdomain "github.com/smallbiznis/meterdash/internal/alerts/domain"
	"github.com/smallbiznis/meterdash/internal/balance"
	balancedomain "github.com/smallbiznis/meterdash/internal/balance/domain"
	"github.com/smallbiznis/meterdash/internal/clock"
	"github.com/smallbiznis/meterdash/internal/config"
	"github.com/smallbiznis/meterdash/internal/costs"
	costsdomain "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/customer"
	customerdomain "github.com/smallbiznis/meterdash/internal/customer/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/smallbiznis/meterdash/internal/observability"
	obsmiddleware "github.com/smallbiznis/meterdash/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/meterdash/internal/observability/metrics"
	obstracing "github.com/smallbiznis/meterdash/internal/observability/tracing"
	"github.com/smallbiznis/meterdash/internal/ratelimit"
	"github.com/smallbiznis/meterdash/internal/spend"
	spenddomain "github.com/smallbiznis/meterdash/internal/spend/domain"
	"github.com/smallbiznis/meterdash/internal/subscription"
	subscriptiondomain "github.com/smallbiznis/meterdash/internal/subscription/domain"
	"github.com/smallbiznis/meterdash/internal/usage"
	usagedomain "github.com/smallbiznis/meterdash/internal/usage/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	metering.Module,
	ratelimit.Module,
	customer.Module,
	balance.Module,
	costs.Module,
	spend.Module,
	alerts.Module,
	usage.Module,
	subscription.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	customerSvc     customerdomain.Service
	balanceSvc      balancedomain.Service
	costsSvc        costsdomain.Service
	spendSvc        spenddomain.Service
	alertsSvc       alertsdomain.Service
	usageSvc        usagedomain.Service
	subscriptionSvc subscriptiondomain.Service
	meteringClient  *metering.Client
	clock           clock.Clock
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	CustomerSvc     customerdomain.Service
	BalanceSvc      balancedomain.Service
	CostsSvc        costsdomain.Service
	SpendSvc        spenddomain.Service
	AlertsSvc       alertsdomain.Service
	UsageSvc        usagedomain.Service
	SubscriptionSvc subscriptiondomain.Service
	MeteringClient  *metering.Client
	Clock           clock.Clock
	ObsMetrics      *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		customerSvc:     p.CustomerSvc,
		balanceSvc:      p.BalanceSvc,
		costsSvc:        p.CostsSvc,
		spendSvc:        p.SpendSvc,
		alertsSvc:       p.AlertsSvc,
		usageSvc:        p.UsageSvc,
		subscriptionSvc: p.SubscriptionSvc,
		meteringClient:  p.MeteringClient,
		clock:           p.Clock,
		obsMetrics:      p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/customers", s.ListCustomers)

	cust := api.Group("/customers/:customerID")
	cust.GET("/overview", s.GetOverview)
	cust.GET("/balances", s.GetBalances)
	cust.GET("/costs", s.GetCosts)
	cust.GET("/spend", s.GetSpend)
	cust.GET("/alerts", s.GetAlerts)
	cust.POST("/alerts", s.CreateAlert)
	cust.DELETE("/alerts/:alertID", s.ArchiveAlert)
	cust.GET("/usage", s.GetUsage)
	cust.POST("/usage/events", s.IngestUsageEvent)
	cust.POST("/usage/preview", s.PreviewUsageEvents)
	cust.GET("/contracts", s.ListContracts)
	cust.POST("/contracts/:contractID/recharge", s.CreateRechargeCommit)
	cust.PUT("/contracts/:contractID/seats", s.UpdateSeatQuantity)
	cust.GET("/dashboard-url", s.GetEmbeddableDashboardURL)
}
