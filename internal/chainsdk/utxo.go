package chainsdk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/utxo/address"
)

// AddressBalanceProvider is implemented by blockchair.Client.
type AddressBalanceProvider interface {
	GetAddressBalance(ctx context.Context, chain, address string) (*big.Int, error)
}

// UTXOFetcher reads native balances of Bitcoin-family chains.
type UTXOFetcher struct {
	chain    chains.Chain
	native   chains.NativeAsset
	provider AddressBalanceProvider
}

func NewUTXOFetcher(chain chains.Chain, provider AddressBalanceProvider) (*UTXOFetcher, error) {
	meta, ok := chains.Lookup(chain.String())
	if !ok || meta.Ecosystem != chains.UTXO {
		return nil, fmt.Errorf("not a UTXO chain: %s", chain)
	}
	return &UTXOFetcher{
		chain:    chain,
		native:   meta.Native,
		provider: provider,
	}, nil
}

func (f *UTXOFetcher) Ecosystem() chains.Ecosystem {
	return chains.UTXO
}

func (f *UTXOFetcher) NativeBalance(ctx context.Context, addr string) (Balance, error) {
	a, err := address.NewFromString(f.chain, addr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s address: %w", f.chain, err)
	}

	amount, err := f.provider.GetAddressBalance(ctx, f.chain.String(), a.String())
	if err != nil {
		return nil, err
	}
	return NewNativeAmount(f.native, amount), nil
}

func (f *UTXOFetcher) TokenBalance(context.Context, string, Token) (Balance, error) {
	return nil, ErrTokensUnsupported
}
