package chainsdk

import (
	"context"
	"errors"
	"math/big"

	"github.com/vultisig/balances/internal/chains"
)

// ErrTokensUnsupported is returned by fetchers of ecosystems without tokens.
var ErrTokensUnsupported = errors.New("chain has no token balances")

// Asset describes what a Balance is denominated in.
type Asset struct {
	Symbol   string
	Name     string
	Decimals int
	// Contract is the token contract, mint or issuer reference; empty for
	// the native asset.
	Contract string
}

// Token is a token a Fetcher is asked about.
type Token struct {
	Contract string
	Symbol   string
	Name     string
	Decimals int
}

// Balance is an amount held in one asset. Implemented by NativeAmount and
// TokenAmount.
type Balance interface {
	IsNative() bool
	Amount() *big.Int
	Asset() Asset
}

// Fetcher talks to one chain ecosystem in its own terms.
type Fetcher interface {
	Ecosystem() chains.Ecosystem
	NativeBalance(ctx context.Context, address string) (Balance, error)
	TokenBalance(ctx context.Context, address string, token Token) (Balance, error)
}

type NativeAmount struct {
	asset  Asset
	amount *big.Int
}

func NewNativeAmount(native chains.NativeAsset, amount *big.Int) NativeAmount {
	return NativeAmount{
		asset: Asset{
			Symbol:   native.Symbol,
			Name:     native.Name,
			Decimals: native.Decimals,
		},
		amount: amount,
	}
}

func (n NativeAmount) IsNative() bool   { return true }
func (n NativeAmount) Amount() *big.Int { return n.amount }
func (n NativeAmount) Asset() Asset     { return n.asset }

type TokenAmount struct {
	asset  Asset
	amount *big.Int
}

func NewTokenAmount(token Token, amount *big.Int) TokenAmount {
	return TokenAmount{
		asset: Asset{
			Symbol:   token.Symbol,
			Name:     token.Name,
			Decimals: token.Decimals,
			Contract: token.Contract,
		},
		amount: amount,
	}
}

func (t TokenAmount) IsNative() bool   { return false }
func (t TokenAmount) Amount() *big.Int { return t.amount }
func (t TokenAmount) Asset() Asset     { return t.asset }
