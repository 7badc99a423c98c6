package chainsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	xrpAccount = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	xrpIssuer  = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
)

func newXRPServer(t *testing.T, handle func(req xrplRequest) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req xrplRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Params, 1)
		_, _ = w.Write([]byte(handle(req)))
	}))
}

func TestXRPFetcher_NativeBalance(t *testing.T) {
	srv := newXRPServer(t, func(req xrplRequest) string {
		require.Equal(t, "account_info", req.Method)
		require.Equal(t, "validated", req.Params[0].LedgerIndex)
		require.True(t, req.Params[0].Strict)
		if req.Params[0].Account == xrpAccount {
			return `{"result":{"status":"success","account_data":{"Account":"` + xrpAccount + `","Balance":"25000000"}}}`
		}
		return `{"result":{"status":"error","error":"actNotFound","error_message":"Account not found."}}`
	})
	defer srv.Close()

	f := NewXRPFetcher(srv.URL, time.Second)
	ctx := context.Background()

	b, err := f.NativeBalance(ctx, xrpAccount)
	require.NoError(t, err)
	require.True(t, b.IsNative())
	require.Equal(t, "25000000", b.Amount().String())
	require.Equal(t, 6, b.Asset().Decimals)

	b, err = f.NativeBalance(ctx, xrpIssuer)
	require.NoError(t, err)
	require.Zero(t, b.Amount().Sign())
}

func TestXRPFetcher_NativeBalance_Error(t *testing.T) {
	srv := newXRPServer(t, func(xrplRequest) string {
		return `{"result":{"status":"error","error":"invalidParams","error_message":"Missing field 'account'."}}`
	})
	defer srv.Close()

	_, err := NewXRPFetcher(srv.URL, time.Second).NativeBalance(context.Background(), "")
	require.ErrorContains(t, err, "invalidParams")
}

func TestXRPFetcher_TokenBalance(t *testing.T) {
	srv := newXRPServer(t, func(req xrplRequest) string {
		require.Equal(t, "account_lines", req.Method)
		require.Equal(t, xrpIssuer, req.Params[0].Peer)
		return `{"result":{"status":"success","lines":[
			{"account":"` + xrpIssuer + `","balance":"12.3456789","currency":"USD"},
			{"account":"` + xrpIssuer + `","balance":"-4","currency":"EUR"}
		]}}`
	})
	defer srv.Close()

	f := NewXRPFetcher(srv.URL, time.Second)
	ctx := context.Background()

	tests := []struct {
		name     string
		contract string
		decimals int
		want     string
	}{
		{name: "scaled and truncated", contract: "USD." + xrpIssuer, decimals: 6, want: "12345678"},
		{name: "negative reads as zero", contract: "EUR." + xrpIssuer, decimals: 6, want: "0"},
		{name: "missing trust line", contract: "GBP." + xrpIssuer, decimals: 6, want: "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := f.TokenBalance(ctx, xrpAccount, Token{Contract: tc.contract, Decimals: tc.decimals})
			require.NoError(t, err)
			require.False(t, b.IsNative())
			require.Equal(t, tc.want, b.Amount().String())
		})
	}

	_, err := f.TokenBalance(ctx, xrpAccount, Token{Contract: "USD"})
	require.Error(t, err)
}
