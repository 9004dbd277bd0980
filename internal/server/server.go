package server

import (
	"context"

	"prepaid-card-backend/internal/handler"
	"prepaid-card-backend/internal/logger"
	appmw "prepaid-card-backend/internal/middleware"
	"prepaid-card-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo            *echo.Echo
	purchaseHandler *handler.PurchaseHandler
	healthHandler   *handler.HealthHandler
	gatherer        prometheus.Gatherer
}

type Params struct {
	PurchaseService service.PurchaseService
	HealthService   service.HealthService
	Logger          *logger.Logger
	// Gatherer backs /metrics; the route is skipped when nil.
	Gatherer prometheus.Gatherer
}

func NewServer(params Params) *Server {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logg)

	e.Use(middleware.RequestID())
	e.Use(appmw.RequestContext(logg))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logg.Zerolog().Info()
			if v.Error != nil {
				event = logg.Zerolog().Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		purchaseHandler: handler.NewPurchaseHandler(params.PurchaseService),
		healthHandler:   handler.NewHealthHandler(params.HealthService, params.PurchaseService),
		gatherer:        params.Gatherer,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.healthHandler.Root)
	s.echo.GET("/test", s.healthHandler.Diagnostics)

	if s.gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := s.echo.Group("/api")
	api.GET("/health", s.healthHandler.Health)
	api.GET("/config", s.purchaseHandler.GetConfig)

	// -------- prepaid cards --------
	prepaid := api.Group("/prepaid")
	prepaid.POST("/create-checkout", s.purchaseHandler.CreateCheckout)
	prepaid.GET("/confirm", s.purchaseHandler.Confirm)
	prepaid.GET("/purchases/:id", s.purchaseHandler.GetPurchase)
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
