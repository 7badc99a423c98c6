package balance

import (
	"context"
)

// RawBalance is the uniform result of a balance fetch on any chain.
type RawBalance struct {
	Address      string  `json:"address"`
	TokenAddress *string `json:"tokenAddress"`
	IsNative     bool    `json:"isNative"`
	Balance      string  `json:"balance"`
	Decimals     int     `json:"decimals"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
}

// TokenInfo describes a token the caller wants probed.
type TokenInfo struct {
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// Fetcher is implemented by every chain family.
//
// GetNativeBalance fails when the underlying call fails. GetTokenBalances is
// best-effort per token: tokens whose call fails are omitted from the result
// and never surface as an error.
type Fetcher interface {
	Chain() string
	Network() string
	GetNativeBalance(ctx context.Context, address string) (RawBalance, error)
	GetTokenBalances(ctx context.Context, address string, tokens []TokenInfo) ([]RawBalance, error)
}

// NewNative builds the native RawBalance for address.
func NewNative(address, amount string, decimals int, symbol, name string) RawBalance {
	return RawBalance{
		Address:  address,
		IsNative: true,
		Balance:  normalizeAmount(amount),
		Decimals: decimals,
		Symbol:   symbol,
		Name:     defaultName(name, symbol),
	}
}

// NewToken builds a token RawBalance for address.
func NewToken(address string, token TokenInfo, amount string) RawBalance {
	tokenAddress := token.Address
	return RawBalance{
		Address:      address,
		TokenAddress: &tokenAddress,
		IsNative:     false,
		Balance:      normalizeAmount(amount),
		Decimals:     token.Decimals,
		Symbol:       token.Symbol,
		Name:         defaultName(token.Name, token.Symbol),
	}
}

func normalizeAmount(amount string) string {
	if amount == "" {
		return "0"
	}
	return amount
}

func defaultName(name, symbol string) string {
	if name == "" {
		return symbol
	}
	return name
}
