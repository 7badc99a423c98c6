package main

import (
	"context"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/api"
	"github.com/vultisig/balances/internal/blockchair"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/chainsdk"
	"github.com/vultisig/balances/internal/graceful"
	"github.com/vultisig/balances/internal/logging"
	"github.com/vultisig/balances/internal/metrics"
	"github.com/vultisig/balances/internal/portfolio"
	"github.com/vultisig/balances/internal/psbt"
	"github.com/vultisig/balances/internal/rpc"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := godotenv.Load()
	if err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(
		cfg.Metrics,
		[]string{metrics.ServiceHTTP, metrics.ServiceBalances, metrics.ServicePSBT},
		logger,
	)
	defer func() {
		if err := metricsServer.Stop(context.Background()); err != nil {
			logger.Errorf("failed to stop metrics server: %v", err)
		}
	}()

	balanceMetrics := metrics.NewBalanceMetrics()
	backends := portfolio.Backends{
		EVM:              make(map[chains.Chain]rpc.Client),
		TokenConcurrency: cfg.TokenConcurrency,
		Recorder:         balanceMetrics,
	}

	evmConfigs := []struct {
		chain  chains.Chain
		rpcURL string
	}{
		{chains.Ethereum, cfg.Rpc.Ethereum.URL},
		{chains.Arbitrum, cfg.Rpc.Arbitrum.URL},
		{chains.Avalanche, cfg.Rpc.Avalanche.URL},
		{chains.BscChain, cfg.Rpc.BSC.URL},
		{chains.Base, cfg.Rpc.Base.URL},
		{chains.Blast, cfg.Rpc.Blast.URL},
		{chains.CronosChain, cfg.Rpc.CronosChain.URL},
		{chains.Optimism, cfg.Rpc.Optimism.URL},
		{chains.Polygon, cfg.Rpc.Polygon.URL},
		{chains.Zksync, cfg.Rpc.Zksync.URL},
	}

	for _, c := range evmConfigs {
		if c.rpcURL == "" {
			continue
		}
		client, er := rpc.Dial(ctx, rpc.Config{
			URL:       c.rpcURL,
			Timeout:   cfg.RPCTimeout,
			RateLimit: cfg.RPCRateLimit,
		})
		if er != nil {
			logger.Fatalf("failed to initialize %s rpc: %v", c.chain.String(), er)
		}
		defer client.Close()
		backends.EVM[c.chain] = client
		logger.Infof("initialized %s with RPC: %s", c.chain.String(), c.rpcURL)
	}

	if cfg.Blockchair.URL != "" {
		backends.UTXO = blockchair.NewClient(cfg.Blockchair.URL, cfg.Blockchair.APIKey, cfg.RPCTimeout)
	}
	if cfg.Solana.URL != "" {
		backends.Solana = chainsdk.NewSolanaFetcher(solanarpc.New(cfg.Solana.URL))
	}
	if cfg.Tron.URL != "" {
		backends.Tron = chainsdk.NewTronFetcher(cfg.Tron.URL, cfg.Tron.APIKey, cfg.RPCTimeout)
	}
	if cfg.XRP.URL != "" {
		backends.XRP = chainsdk.NewXRPFetcher(cfg.XRP.URL, cfg.RPCTimeout)
	}

	balances, err := portfolio.NewServiceFromBackends(cfg.Network, backends, logger)
	if err != nil {
		logger.Fatalf("failed to initialize balance service: %v", err)
	}
	balanceMetrics.SetRegisteredChains(len(balances.Chains()))
	logger.Infof("serving balances for %v", balances.Chains())

	validator, err := psbt.NewValidator(cfg.PSBTChain, logger, psbt.WithRecorder(metrics.NewPSBTMetrics()))
	if err != nil {
		logger.Fatalf("failed to initialize psbt validator: %v", err)
	}

	srv := api.NewServer(
		cfg.Server,
		balances,
		validator,
		[]echo.MiddlewareFunc{metrics.HTTPMiddleware()},
		logger,
	)

	graceful.CancelOnSignal(cancel, logger)

	err = srv.Start(ctx)
	if err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
