package chainsdk

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vultisig/balances/internal/chains"
)

// XRPFetcher reads XRP and issued-currency balances over rippled JSON-RPC.
// Issued tokens are addressed as "CURRENCY.issuer".
type XRPFetcher struct {
	rpcURL     string
	httpClient *http.Client
	native     chains.NativeAsset
}

func NewXRPFetcher(rpcURL string, timeout time.Duration) *XRPFetcher {
	return &XRPFetcher{
		rpcURL: rpcURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		native: chains.MustLookup(chains.Ripple).Native,
	}
}

type xrplRequest struct {
	Method string      `json:"method"`
	Params []xrplParam `json:"params"`
}

type xrplParam struct {
	Account     string `json:"account"`
	LedgerIndex string `json:"ledger_index"`
	Strict      bool   `json:"strict,omitempty"`
	Peer        string `json:"peer,omitempty"`
}

type xrplResponse struct {
	Result struct {
		Status       string `json:"status"`
		Error        string `json:"error,omitempty"`
		ErrorMessage string `json:"error_message,omitempty"`
		AccountData  struct {
			Account string `json:"Account"`
			Balance string `json:"Balance"`
		} `json:"account_data"`
		Lines []xrplLine `json:"lines"`
	} `json:"result"`
}

type xrplLine struct {
	Account  string `json:"account"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

const xrplAccountNotFound = "actNotFound"

func (f *XRPFetcher) Ecosystem() chains.Ecosystem {
	return chains.XRP
}

// NativeBalance returns the balance in drops. Unfunded accounts read as zero.
func (f *XRPFetcher) NativeBalance(ctx context.Context, address string) (Balance, error) {
	resp, err := f.call(ctx, "account_info", xrplParam{
		Account:     address,
		LedgerIndex: "validated",
		Strict:      true,
	})
	if err != nil {
		return nil, err
	}
	if resp.Result.Error == xrplAccountNotFound {
		return NewNativeAmount(f.native, big.NewInt(0)), nil
	}
	if resp.Result.Error != "" {
		return nil, fmt.Errorf("xrp: XRPL error: %s - %s", resp.Result.Error, resp.Result.ErrorMessage)
	}

	drops, ok := new(big.Int).SetString(resp.Result.AccountData.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("xrp: failed to parse balance %q", resp.Result.AccountData.Balance)
	}
	return NewNativeAmount(f.native, drops), nil
}

// TokenBalance returns the trust line balance scaled by token.Decimals.
// Missing trust lines and negative balances read as zero.
func (f *XRPFetcher) TokenBalance(ctx context.Context, address string, token Token) (Balance, error) {
	currency, issuer, ok := strings.Cut(token.Contract, ".")
	if !ok || currency == "" || issuer == "" {
		return nil, fmt.Errorf("xrp: token %q is not CURRENCY.issuer", token.Contract)
	}

	resp, err := f.call(ctx, "account_lines", xrplParam{
		Account:     address,
		LedgerIndex: "validated",
		Peer:        issuer,
	})
	if err != nil {
		return nil, err
	}
	if resp.Result.Error != "" {
		return nil, fmt.Errorf("xrp: XRPL error: %s - %s", resp.Result.Error, resp.Result.ErrorMessage)
	}

	for _, line := range resp.Result.Lines {
		if line.Currency != currency || line.Account != issuer {
			continue
		}
		value, err := decimal.NewFromString(line.Balance)
		if err != nil {
			return nil, fmt.Errorf("xrp: failed to parse trust line balance %q: %w", line.Balance, err)
		}
		if value.IsNegative() {
			return NewTokenAmount(token, big.NewInt(0)), nil
		}
		return NewTokenAmount(token, value.Shift(int32(token.Decimals)).Truncate(0).BigInt()), nil
	}
	return NewTokenAmount(token, big.NewInt(0)), nil
}

func (f *XRPFetcher) call(ctx context.Context, method string, param xrplParam) (*xrplResponse, error) {
	var resp xrplResponse
	err := postJSON(ctx, f.httpClient, f.rpcURL, nil, xrplRequest{
		Method: method,
		Params: []xrplParam{param},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("xrp: %s: %w", method, err)
	}
	return &resp, nil
}
