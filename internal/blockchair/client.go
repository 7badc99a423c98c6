package blockchair

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type dashboardQuery struct {
	Key string `url:"key,omitempty"`
}

type addrInfoResponse struct {
	Data map[string]struct {
		Address struct {
			Type               string  `json:"type"`
			ScriptHex          string  `json:"script_hex"`
			Balance            int64   `json:"balance"`
			BalanceUsd         float64 `json:"balance_usd"`
			Received           int64   `json:"received"`
			Spent              int64   `json:"spent"`
			OutputCount        int     `json:"output_count"`
			UnspentOutputCount int     `json:"unspent_output_count"`
		} `json:"address"`
	} `json:"data"`
	Context struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	} `json:"context"`
}

// GetAddressBalance returns the confirmed balance of address in the chain's
// smallest unit. chain is the Blockchair slug, e.g. "bitcoin".
func (c *Client) GetAddressBalance(ctx context.Context, chain, address string) (*big.Int, error) {
	u := c.url + "/" + chain + "/dashboards/address/" + url.PathEscape(address)
	params, err := query.Values(dashboardQuery{Key: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("blockchair: failed to encode query: %w", err)
	}
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("blockchair: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blockchair: failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("blockchair: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blockchair: unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r addrInfoResponse
	err = json.Unmarshal(body, &r)
	if err != nil {
		return nil, fmt.Errorf("blockchair: failed to decode response: %w", err)
	}
	if r.Context.Error != "" {
		return nil, fmt.Errorf("blockchair: %s", r.Context.Error)
	}

	val, ok := r.Data[address]
	if !ok {
		return nil, fmt.Errorf("blockchair: address %s missing from response", address)
	}
	if val.Address.Balance < 0 {
		return nil, fmt.Errorf("blockchair: negative balance %d for %s", val.Address.Balance, address)
	}
	return big.NewInt(val.Address.Balance), nil
}
