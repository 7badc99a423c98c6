package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

// Client is the JSON-RPC boundary the balance fetchers talk through.
type Client interface {
	Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

type Config struct {
	URL     string
	Timeout time.Duration `default:"10s"`
	// RateLimit is the number of calls per second; zero disables limiting.
	RateLimit float64
	Burst     int `default:"10"`
}

// JSONClient implements Client on top of the go-ethereum rpc client.
type JSONClient struct {
	rpc     *gethrpc.Client
	timeout time.Duration
	limiter *rate.Limiter
}

func Dial(ctx context.Context, cfg Config) (*JSONClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}

	c, err := gethrpc.DialOptions(ctx, cfg.URL, gethrpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}
	return NewJSONClient(c, cfg), nil
}

func NewJSONClient(c *gethrpc.Client, cfg Config) *JSONClient {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &JSONClient{
		rpc:     c,
		timeout: cfg.Timeout,
		limiter: limiter,
	}
}

// Call issues a single JSON-RPC request. A timeout configured on the client
// bounds every call independently of the caller's context.
func (c *JSONClient) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var result json.RawMessage
	err := c.rpc.CallContext(ctx, &result, method, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return result, nil
}

func (c *JSONClient) Close() {
	c.rpc.Close()
}
