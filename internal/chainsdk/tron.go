package chainsdk

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	ecommon "github.com/ethereum/go-ethereum/common"

	"github.com/vultisig/balances/internal/chains"
)

const tronAddressPrefix = 0x41

// TronFetcher reads TRX and TRC-20 balances through the TronGrid HTTP API.
type TronFetcher struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	native     chains.NativeAsset
}

func NewTronFetcher(baseURL, apiKey string, timeout time.Duration) *TronFetcher {
	return &TronFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		native: chains.MustLookup(chains.Tron).Native,
	}
}

type tronAccountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

type tronAccount struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type tronConstantCallRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	Visible          bool   `json:"visible"`
}

type tronConstantCallResponse struct {
	ConstantResult []string `json:"constant_result"`
	Result         struct {
		Result  bool   `json:"result"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"result"`
}

func (f *TronFetcher) Ecosystem() chains.Ecosystem {
	return chains.TVM
}

// NativeBalance returns the TRX balance in sun. Accounts never activated
// come back as an empty object and read as zero.
func (f *TronFetcher) NativeBalance(ctx context.Context, address string) (Balance, error) {
	_, err := decodeTronAddress(address)
	if err != nil {
		return nil, err
	}

	var account tronAccount
	err = postJSON(ctx, f.httpClient, f.baseURL+"/wallet/getaccount", f.headers(), tronAccountRequest{
		Address: address,
		Visible: true,
	}, &account)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to get account: %w", err)
	}
	return NewNativeAmount(f.native, big.NewInt(account.Balance)), nil
}

func (f *TronFetcher) TokenBalance(ctx context.Context, address string, token Token) (Balance, error) {
	owner, err := decodeTronAddress(address)
	if err != nil {
		return nil, err
	}

	var res tronConstantCallResponse
	err = postJSON(ctx, f.httpClient, f.baseURL+"/wallet/triggerconstantcontract", f.headers(), tronConstantCallRequest{
		OwnerAddress:     address,
		ContractAddress:  token.Contract,
		FunctionSelector: "balanceOf(address)",
		Parameter:        hex.EncodeToString(ecommon.LeftPadBytes(owner, 32)),
		Visible:          true,
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to call %s: %w", token.Contract, err)
	}
	if !res.Result.Result {
		return nil, fmt.Errorf("tron: call to %s failed: %s %s", token.Contract, res.Result.Code, res.Result.Message)
	}
	if len(res.ConstantResult) == 0 {
		return nil, fmt.Errorf("tron: empty result from %s", token.Contract)
	}

	amount, ok := new(big.Int).SetString(res.ConstantResult[0], 16)
	if !ok {
		return nil, fmt.Errorf("tron: malformed balance %q from %s", res.ConstantResult[0], token.Contract)
	}
	return NewTokenAmount(token, amount), nil
}

func (f *TronFetcher) headers() map[string]string {
	if f.apiKey == "" {
		return nil
	}
	return map[string]string{"TRON-PRO-API-KEY": f.apiKey}
}

// decodeTronAddress returns the 20-byte account id of a base58check Tron
// address.
func decodeTronAddress(address string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, fmt.Errorf("tron: invalid address %q: %w", address, err)
	}
	if version != tronAddressPrefix {
		return nil, fmt.Errorf("tron: invalid address prefix 0x%x", version)
	}
	if len(payload) != 20 {
		return nil, fmt.Errorf("tron: invalid address length %d", len(payload))
	}
	return payload, nil
}
