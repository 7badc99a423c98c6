package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/portfolio"
)

var (
	host       = flag.String("host", "http://localhost:8080", "balances server host")
	flatPreset = flag.String("preset", "", "preset to execute")
	chain      = flag.String("chain", "ethereum", "chain alias")
	address    = flag.String("address", "0xcB9B049B9c937acFDB87EeCfAa9e7f2c51E754f5", "wallet address")
	psbtHex    = flag.String("psbt", "", "hex encoded psbt")
	from       = flag.String("from", "", "expected sender")
	to         = flag.String("to", "", "expected recipient")
	amount     = flag.String("amount", "", "expected amount in whole coins, e.g. 0.0015, empty to skip")
)

var presets = map[string]func(context.Context) error{
	"balances":      balances,
	"validate-psbt": validatePSBT,
}

func main() {
	flag.Parse()

	if *flatPreset == "" {
		panic("preset is required")
	}
	preset, ok := presets[*flatPreset]
	if !ok {
		panic("unknown preset: " + *flatPreset)
	}

	ctx := context.Background()
	err := preset(ctx)
	if err != nil {
		panic(err)
	}
}

func call(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, *host+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make http call: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return resBody, res.StatusCode, nil
}

func balances(ctx context.Context) error {
	path := "/balances/" + url.PathEscape(*chain) + "/" + url.PathEscape(*address)
	body, status, err := call(ctx, http.MethodPost, path, map[string]any{
		"tokens": []balance.TokenInfo{
			{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
			{Address: "0xdac17f958d2ee523a2206206994597c13d831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get balances: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", status, body)
	}

	var p portfolio.Portfolio
	err = json.Unmarshal(body, &p)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	fmt.Printf("%s %s: %s %s\n", p.Chain, p.Address, balance.FormatUnits(p.Native.Balance, p.Native.Decimals), p.Native.Symbol)
	for _, t := range p.Tokens {
		fmt.Printf("  %s (%s): %s\n", t.Symbol, *t.TokenAddress, balance.FormatUnits(t.Balance, t.Decimals))
	}
	return nil
}

func validatePSBT(ctx context.Context) error {
	req := map[string]any{
		"psbtHex": *psbtHex,
		"from":    *from,
		"to":      *to,
	}
	if *amount != "" {
		units, err := balance.ParseUnits(*amount, chains.MustLookup(chains.Bitcoin).Native.Decimals)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		sats, err := strconv.ParseInt(units, 10, 64)
		if err != nil {
			return fmt.Errorf("amount out of range: %w", err)
		}
		req["amount"] = sats
	}

	body, status, err := call(ctx, http.MethodPost, "/psbt/validate", req)
	if err != nil {
		return fmt.Errorf("failed to validate psbt: %w", err)
	}
	fmt.Printf("%d %s\n", status, body)
	return nil
}
