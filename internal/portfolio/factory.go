package portfolio

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/chainsdk"
	"github.com/vultisig/balances/internal/evm"
	"github.com/vultisig/balances/internal/rpc"
)

// ErrNoBackend is returned by NewFetcher when the chain's backend is not
// configured.
var ErrNoBackend = errors.New("no backend configured")

// Backends holds the upstream clients fetchers are built on. Nil entries
// leave the corresponding chains unsupported.
type Backends struct {
	EVM    map[chains.Chain]rpc.Client
	UTXO   chainsdk.AddressBalanceProvider
	Solana chainsdk.Fetcher
	Tron   chainsdk.Fetcher
	XRP    chainsdk.Fetcher

	TokenConcurrency int
	Recorder         balance.Recorder
}

func (b Backends) recorder() balance.Recorder {
	if b.Recorder == nil {
		return balance.NopRecorder{}
	}
	return b.Recorder
}

// NewFetcher builds the balance.Fetcher for chain from its ecosystem.
func NewFetcher(chain chains.Chain, network string, b Backends, logger logrus.FieldLogger) (balance.Fetcher, error) {
	meta, ok := chains.Lookup(chain.String())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, chain)
	}

	switch meta.Ecosystem {
	case chains.EVM:
		client, ok := b.EVM[meta.Chain]
		if !ok || client == nil {
			return nil, fmt.Errorf("%w: %s rpc", ErrNoBackend, chain)
		}
		return evm.NewBalanceFetcher(
			client,
			meta.Chain.String(),
			network,
			logger,
			evm.WithConcurrency(b.TokenConcurrency),
			evm.WithRecorder(b.recorder()),
		), nil
	case chains.UTXO:
		if b.UTXO == nil {
			return nil, fmt.Errorf("%w: %s blockchair", ErrNoBackend, chain)
		}
		f, err := chainsdk.NewUTXOFetcher(meta.Chain, b.UTXO)
		if err != nil {
			return nil, fmt.Errorf("failed to create utxo fetcher: %w", err)
		}
		return adapt(f, meta.Chain, network, b, logger), nil
	case chains.SVM:
		return adaptOrMissing(b.Solana, meta.Chain, network, b, logger)
	case chains.TVM:
		return adaptOrMissing(b.Tron, meta.Chain, network, b, logger)
	case chains.XRP:
		return adaptOrMissing(b.XRP, meta.Chain, network, b, logger)
	default:
		return nil, fmt.Errorf("unsupported ecosystem %q for chain %s", meta.Ecosystem, chain)
	}
}

// NewServiceFromBackends registers a fetcher for every chain whose backend
// is configured.
func NewServiceFromBackends(network string, b Backends, logger logrus.FieldLogger) (*Service, error) {
	s := NewService(logger)
	for _, chain := range chains.All() {
		f, err := NewFetcher(chain, network, b, logger)
		if err != nil {
			if errors.Is(err, ErrNoBackend) {
				logger.WithField("chain", chain).Debug("chain skipped, no backend")
				continue
			}
			return nil, err
		}
		s.Register(f)
	}
	return s, nil
}

func adaptOrMissing(
	f chainsdk.Fetcher,
	chain chains.Chain,
	network string,
	b Backends,
	logger logrus.FieldLogger,
) (balance.Fetcher, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBackend, chain)
	}
	return adapt(f, chain, network, b, logger), nil
}

func adapt(
	f chainsdk.Fetcher,
	chain chains.Chain,
	network string,
	b Backends,
	logger logrus.FieldLogger,
) balance.Fetcher {
	return chainsdk.NewAdapter(
		f,
		chain.String(),
		network,
		logger,
		chainsdk.WithConcurrency(b.TokenConcurrency),
		chainsdk.WithRecorder(b.recorder()),
	)
}
