// Package metrics provides Prometheus metrics collection for the balances
// service.
//
// This package includes:
//   - HTTP request metrics (count, latency, errors)
//   - balance fetch outcomes per chain and kind
//   - PSBT rejections per reason
//   - a metrics HTTP server on a configurable port
//
// Usage:
//
//	metricsServer := metrics.StartMetricsServer(cfg.Metrics, []string{metrics.ServiceHTTP}, logger)
//	defer metricsServer.Stop(context.Background())
//
//	e.Use(metrics.HTTPMiddleware())
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	ServiceHTTP     = "http"
	ServiceBalances = "balances"
	ServicePSBT     = "psbt"
)

type Config struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Host    string `envconfig:"METRICS_HOST" default:"0.0.0.0"`
	Port    string `envconfig:"METRICS_PORT" default:"88"`
}

type Server struct {
	e      *echo.Echo
	logger *logrus.Logger
}

// StartMetricsServer registers the metrics of services and serves
// /metrics in the background. It returns nil when metrics are disabled.
func StartMetricsServer(cfg Config, services []string, logger *logrus.Logger) *Server {
	if !cfg.Enabled {
		logger.Info("metrics disabled")
		return nil
	}

	RegisterMetrics(services, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	go func() {
		logger.Infof("metrics server listening on %s", addr)
		err := e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return &Server{
		e:      e,
		logger: logger,
	}
}

func (s *Server) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.logger.Info("stopping metrics server")
	return s.e.Shutdown(ctx)
}
