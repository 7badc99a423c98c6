package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/portfolio"
	"github.com/vultisig/balances/internal/psbt"
)

type stubFetcher struct {
	nativeErr error
	gotTokens []balance.TokenInfo
}

func (s *stubFetcher) Chain() string   { return "ethereum" }
func (s *stubFetcher) Network() string { return "mainnet" }

func (s *stubFetcher) GetNativeBalance(_ context.Context, address string) (balance.RawBalance, error) {
	if s.nativeErr != nil {
		return balance.RawBalance{}, s.nativeErr
	}
	return balance.NewNative(address, "42", 18, "ETH", "Ether"), nil
}

func (s *stubFetcher) GetTokenBalances(_ context.Context, address string, tokens []balance.TokenInfo) ([]balance.RawBalance, error) {
	s.gotTokens = tokens
	res := []balance.RawBalance{}
	for _, t := range tokens {
		res = append(res, balance.NewToken(address, t, "7"))
	}
	return res, nil
}

func newTestServer(t *testing.T, f *stubFetcher) *Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	svc := portfolio.NewService(logger)
	svc.Register(f)
	validator, err := psbt.NewValidator(chains.Bitcoin, logger)
	require.NoError(t, err)
	return NewServer(Config{}, svc, validator, nil, logger)
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestGetBalances(t *testing.T) {
	f := &stubFetcher{}
	s := newTestServer(t, f)

	tokens := url.QueryEscape(`[{"address":"0xa0b8","symbol":"USDC","decimals":6}]`)
	rec := do(s, http.MethodGet, "/balances/ethereum/0xabc?tokens="+tokens, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p portfolio.Portfolio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "ethereum", p.Chain)
	require.Equal(t, "42", p.Native.Balance)
	require.True(t, p.Native.IsNative)
	require.Len(t, p.Tokens, 1)
	require.Equal(t, "0xa0b8", *p.Tokens[0].TokenAddress)
	require.Equal(t, "USDC", p.Tokens[0].Name)
}

func TestGetBalances_NullTokenAddressForNative(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	rec := do(s, http.MethodGet, "/balances/ethereum/0xabc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"tokenAddress":null`)
	require.Contains(t, rec.Body.String(), `"tokens":[]`)
}

func TestPostBalances(t *testing.T) {
	f := &stubFetcher{}
	s := newTestServer(t, f)

	rec := do(s, http.MethodPost, "/balances/ethereum/0xabc", `{"tokens":[{"address":"0x1","symbol":"A","decimals":18},{"address":"0x2","symbol":"B","decimals":6}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.gotTokens, 2)
}

func TestBalances_Errors(t *testing.T) {
	s := newTestServer(t, &stubFetcher{nativeErr: errors.New("node unreachable")})

	rec := do(s, http.MethodGet, "/balances/solana/abc", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(s, http.MethodGet, "/balances/ethereum/0xabc?tokens=notjson", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodGet, "/balances/ethereum/0xabc", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "node unreachable")
}

func TestValidatePSBT(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	rec := do(s, http.MethodPost, "/psbt/validate", `{"psbtHex":"not-a-psbt","from":"a","to":"b"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var res validatePSBTResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.Valid)
	require.Equal(t, string(psbt.ReasonMalformed), res.Reason)
	require.Contains(t, res.Error, "invalid psbt hex")
}

type okValidator struct{}

func (okValidator) Validate(string, psbt.Expected) error { return nil }

func TestValidatePSBT_Valid(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewServer(Config{}, portfolio.NewService(logger), okValidator{}, nil, logger)

	rec := do(s, http.MethodPost, "/psbt/validate", `{"psbtHex":"70736274ff","from":"a","to":"b","amount":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"valid":true}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	rec := do(s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","chains":1}`, rec.Body.String())

	rec = do(s, http.MethodGet, "/chains", "")
	require.JSONEq(t, `[{"chain":"ethereum","ecosystem":"evm","curve":"secp256k1","evmId":1,"native":"ETH"}]`, rec.Body.String())
}

type solanaStub struct {
	stubFetcher
}

func (solanaStub) Chain() string { return "solana" }

func TestChains_NonEVM(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := portfolio.NewService(logger)
	svc.Register(&solanaStub{})
	s := NewServer(Config{}, svc, okValidator{}, nil, logger)

	rec := do(s, http.MethodGet, "/chains", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"chain":"solana","ecosystem":"svm","curve":"ed25519","native":"SOL"}]`, rec.Body.String())
}
