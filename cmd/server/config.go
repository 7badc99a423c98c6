package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/vultisig/balances/internal/api"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/logging"
	"github.com/vultisig/balances/internal/metrics"
)

type config struct {
	LogFormat        logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	Network          string            `envconfig:"NETWORK" default:"mainnet"`
	PSBTChain        chains.Chain      `envconfig:"PSBT_CHAIN" default:"bitcoin"`
	RPCTimeout       time.Duration     `envconfig:"RPC_TIMEOUT" default:"10s"`
	RPCRateLimit     float64           `envconfig:"RPC_RATE_LIMIT" default:"0"`
	TokenConcurrency int               `envconfig:"TOKEN_CONCURRENCY" default:"16"`
	Server           api.Config
	Metrics          metrics.Config
	Rpc              rpcConfig
	Blockchair       blockchairConfig
	Solana           rpcItem
	Tron             tronConfig
	XRP              rpcItem
}

type rpcConfig struct {
	Ethereum    rpcItem
	Arbitrum    rpcItem
	Avalanche   rpcItem
	BSC         rpcItem
	Base        rpcItem
	Blast       rpcItem
	CronosChain rpcItem
	Optimism    rpcItem
	Polygon     rpcItem
	Zksync      rpcItem
}

type rpcItem struct {
	URL string
}

type blockchairConfig struct {
	URL    string `default:"https://api.blockchair.com"`
	APIKey string
}

type tronConfig struct {
	URL    string
	APIKey string
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
