package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/portfolio"
	"github.com/vultisig/balances/internal/psbt"
)

type Config struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type balanceService interface {
	Chains() []string
	GetBalances(ctx context.Context, chain, address string, tokens []balance.TokenInfo) (portfolio.Portfolio, error)
}

type psbtValidator interface {
	Validate(psbtHex string, expected psbt.Expected) error
}

type Server struct {
	cfg       Config
	e         *echo.Echo
	balances  balanceService
	validator psbtValidator
	logger    *logrus.Logger
}

func NewServer(
	cfg Config,
	balances balanceService,
	validator psbtValidator,
	middlewares []echo.MiddlewareFunc,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		cfg:       cfg,
		e:         echo.New(),
		balances:  balances,
		validator: validator,
		logger:    logger,
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.Use(middleware.Recover())
	s.e.Use(middlewares...)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.e.GET("/healthz", s.handleHealth)
	s.e.GET("/chains", s.handleChains)
	s.e.GET("/balances/:chain/:address", s.handleGetBalances)
	s.e.POST("/balances/:chain/:address", s.handlePostBalances)
	s.e.POST("/psbt/validate", s.handleValidatePSBT)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("api server listening on %s", addr)
		err := s.e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.e.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("failed to shutdown api server: %w", err)
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
