package chainsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/require"
)

func tronAddress(t *testing.T, id byte) string {
	t.Helper()
	return base58.CheckEncode(bytes.Repeat([]byte{id}, 20), tronAddressPrefix)
}

func TestDecodeTronAddress(t *testing.T) {
	addr := tronAddress(t, 0xab)

	id, err := decodeTronAddress(addr)
	require.NoError(t, err)
	require.Len(t, id, 20)
	require.Equal(t, byte(0xab), id[0])

	_, err = decodeTronAddress("0OIl")
	require.Error(t, err)

	_, err = decodeTronAddress(base58.CheckEncode([]byte{1, 2}, tronAddressPrefix))
	require.ErrorContains(t, err, "length")

	_, err = decodeTronAddress(base58.CheckEncode(bytes.Repeat([]byte{0xab}, 20), 0x00))
	require.ErrorContains(t, err, "prefix")

	raw := base58.Decode(addr)
	raw[len(raw)-1] ^= 0xff
	_, err = decodeTronAddress(base58.Encode(raw))
	require.ErrorIs(t, err, base58.ErrChecksum)
}

func TestTronFetcher(t *testing.T) {
	owner := tronAddress(t, 0x11)
	contract := tronAddress(t, 0x22)

	var gotKey string
	var gotParam string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("TRON-PRO-API-KEY")
		switch r.URL.Path {
		case "/wallet/getaccount":
			_, _ = w.Write([]byte(`{"address":"` + owner + `","balance":12500000}`))
		case "/wallet/triggerconstantcontract":
			var req tronConstantCallRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotParam = req.Parameter
			if req.ContractAddress != contract {
				_, _ = w.Write([]byte(`{"result":{"result":false,"code":"CONTRACT_VALIDATE_ERROR","message":"no contract"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"result":{"result":true},"constant_result":["00000000000000000000000000000000000000000000000000000000000f4240"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewTronFetcher(srv.URL+"/", "secret", 5*time.Second)
	ctx := context.Background()

	b, err := f.NativeBalance(ctx, owner)
	require.NoError(t, err)
	require.True(t, b.IsNative())
	require.Equal(t, "12500000", b.Amount().String())
	require.Equal(t, "TRX", b.Asset().Symbol)
	require.Equal(t, "secret", gotKey)

	tb, err := f.TokenBalance(ctx, owner, Token{Contract: contract, Symbol: "USDT", Decimals: 6})
	require.NoError(t, err)
	require.False(t, tb.IsNative())
	require.Equal(t, "1000000", tb.Amount().String())
	require.Equal(t, contract, tb.Asset().Contract)
	require.Len(t, gotParam, 64)
	require.True(t, strings.HasSuffix(gotParam, strings.Repeat("11", 20)))
	require.Equal(t, strings.Repeat("0", 24), gotParam[:24])

	_, err = f.TokenBalance(ctx, owner, Token{Contract: tronAddress(t, 0x33)})
	require.ErrorContains(t, err, "CONTRACT_VALIDATE_ERROR")

	_, err = f.NativeBalance(ctx, "not-an-address")
	require.Error(t, err)
}

func TestTronFetcher_EmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("TRON-PRO-API-KEY"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := NewTronFetcher(srv.URL, "", time.Second)
	b, err := f.NativeBalance(context.Background(), tronAddress(t, 0x44))
	require.NoError(t, err)
	require.Zero(t, b.Amount().Sign())
}

func TestTronFetcher_MalformedTokenBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"result":true},"constant_result":["not-hex"]}`))
	}))
	defer srv.Close()

	f := NewTronFetcher(srv.URL, "", time.Second)
	_, err := f.TokenBalance(context.Background(), tronAddress(t, 0x66), Token{Contract: tronAddress(t, 0x77)})
	require.ErrorContains(t, err, "malformed balance")
}

func TestTronFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	f := NewTronFetcher(srv.URL, "", time.Second)
	_, err := f.NativeBalance(context.Background(), tronAddress(t, 0x55))
	require.ErrorContains(t, err, "429")
}
