package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params []any           `json:"params"`
}

func newNode(t *testing.T, handler func(req rpcRequest) (any, *map[string]any)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		result, rpcErr := handler(req)
		resp := map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		if rpcErr != nil {
			resp["error"] = *rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestJSONClient_Call(t *testing.T) {
	srv := newNode(t, func(req rpcRequest) (any, *map[string]any) {
		require.Equal(t, "eth_getBalance", req.Method)
		require.Equal(t, []any{"0xabc", "latest"}, req.Params)
		return "0x1", nil
	})

	c, err := Dial(context.Background(), Config{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	defer c.Close()

	res, err := c.Call(context.Background(), "eth_getBalance", "0xabc", "latest")
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(res, &s))
	require.Equal(t, "0x1", s)
}

func TestJSONClient_CallError(t *testing.T) {
	srv := newNode(t, func(req rpcRequest) (any, *map[string]any) {
		return nil, &map[string]any{"code": -32000, "message": "execution reverted"}
	})

	c, err := Dial(context.Background(), Config{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Call(context.Background(), "eth_call", map[string]string{"to": "0x1"}, "latest")
	require.Error(t, err)
	require.Contains(t, err.Error(), "eth_call")
	require.Contains(t, err.Error(), "execution reverted")
}

func TestJSONClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := Dial(context.Background(), Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
}

func TestDial_RequiresURL(t *testing.T) {
	_, err := Dial(context.Background(), Config{})
	require.Error(t, err)
}
