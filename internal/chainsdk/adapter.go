package chainsdk

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
)

// Adapter exposes a chainsdk Fetcher as a balance.Fetcher.
type Adapter struct {
	fetcher     Fetcher
	chain       string
	network     string
	concurrency int
	logger      logrus.FieldLogger
	recorder    balance.Recorder
}

type Option func(*Adapter)

// WithConcurrency caps the number of token calls in flight.
func WithConcurrency(n int) Option {
	return func(a *Adapter) {
		a.concurrency = n
	}
}

func WithRecorder(r balance.Recorder) Option {
	return func(a *Adapter) {
		a.recorder = r
	}
}

func NewAdapter(
	fetcher Fetcher,
	chain, network string,
	logger logrus.FieldLogger,
	opts ...Option,
) *Adapter {
	a := &Adapter{
		fetcher:  fetcher,
		chain:    chain,
		network:  network,
		logger:   logger.WithField("chain", chain),
		recorder: balance.NopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Chain() string {
	return a.chain
}

func (a *Adapter) Network() string {
	return a.network
}

func (a *Adapter) GetNativeBalance(ctx context.Context, address string) (balance.RawBalance, error) {
	b, err := a.fetcher.NativeBalance(ctx, address)
	if err != nil {
		a.recorder.RecordFetch(a.chain, balance.KindNative, balance.StatusError)
		return balance.RawBalance{}, fmt.Errorf("failed to get native balance: %w", err)
	}
	a.recorder.RecordFetch(a.chain, balance.KindNative, balance.StatusSuccess)
	return toRawBalance(address, b), nil
}

func (a *Adapter) GetTokenBalances(
	ctx context.Context,
	address string,
	tokens []balance.TokenInfo,
) ([]balance.RawBalance, error) {
	if !a.fetcher.Ecosystem().HasTokens() || len(tokens) == 0 {
		return []balance.RawBalance{}, nil
	}

	results := balance.Settle(ctx, tokens, a.concurrency, func(ctx context.Context, token balance.TokenInfo) (balance.RawBalance, error) {
		b, err := a.fetcher.TokenBalance(ctx, address, Token{
			Contract: token.Address,
			Symbol:   token.Symbol,
			Name:     token.Name,
			Decimals: token.Decimals,
		})
		if err != nil {
			return balance.RawBalance{}, err
		}
		return toRawBalance(address, b), nil
	})

	for i, r := range results {
		if r.Err != nil {
			a.recorder.RecordFetch(a.chain, balance.KindToken, balance.StatusError)
			a.logger.WithError(r.Err).WithField("token", tokens[i].Address).Debug("token balance dropped")
			continue
		}
		a.recorder.RecordFetch(a.chain, balance.KindToken, balance.StatusSuccess)
	}
	return balance.Successes(results), nil
}

func toRawBalance(address string, b Balance) balance.RawBalance {
	amount := "0"
	if n := b.Amount(); n != nil && n.Sign() > 0 {
		amount = n.String()
	}

	asset := b.Asset()
	if b.IsNative() {
		return balance.NewNative(address, amount, asset.Decimals, asset.Symbol, asset.Name)
	}
	return balance.NewToken(address, balance.TokenInfo{
		Address:  asset.Contract,
		Decimals: asset.Decimals,
		Symbol:   asset.Symbol,
		Name:     asset.Name,
	}, amount)
}
