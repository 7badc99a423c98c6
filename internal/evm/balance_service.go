package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ecommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/rpc"
)

// balanceOfSelector is the ERC-20 balanceOf(address) selector.
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

// BalanceFetcher reads native and ERC-20 balances from an EVM chain.
type BalanceFetcher struct {
	rpc         rpc.Client
	chain       string
	network     string
	concurrency int
	logger      logrus.FieldLogger
	recorder    balance.Recorder
}

type Option func(*BalanceFetcher)

// WithConcurrency caps the number of token calls in flight.
func WithConcurrency(n int) Option {
	return func(f *BalanceFetcher) {
		f.concurrency = n
	}
}

func WithRecorder(r balance.Recorder) Option {
	return func(f *BalanceFetcher) {
		f.recorder = r
	}
}

func NewBalanceFetcher(
	client rpc.Client,
	chain, network string,
	logger logrus.FieldLogger,
	opts ...Option,
) *BalanceFetcher {
	f := &BalanceFetcher{
		rpc:      client,
		chain:    chain,
		network:  network,
		logger:   logger.WithField("chain", chain),
		recorder: balance.NopRecorder{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *BalanceFetcher) Chain() string {
	return f.chain
}

func (f *BalanceFetcher) Network() string {
	return f.network
}

func (f *BalanceFetcher) GetNativeBalance(ctx context.Context, address string) (balance.RawBalance, error) {
	res, err := f.rpc.Call(ctx, "eth_getBalance", address, "latest")
	if err != nil {
		f.recorder.RecordFetch(f.chain, balance.KindNative, balance.StatusError)
		return balance.RawBalance{}, fmt.Errorf("failed to get native balance: %w", err)
	}
	f.recorder.RecordFetch(f.chain, balance.KindNative, balance.StatusSuccess)

	native := chains.NativeOf(f.chain)
	return balance.NewNative(
		address,
		balance.HexToBigIntString(decodeHexResult(res)),
		native.Decimals,
		native.Symbol,
		native.Name,
	), nil
}

func (f *BalanceFetcher) GetTokenBalances(
	ctx context.Context,
	address string,
	tokens []balance.TokenInfo,
) ([]balance.RawBalance, error) {
	if len(tokens) == 0 {
		return []balance.RawBalance{}, nil
	}

	balances, err := f.getTokenBalancesMulticall(ctx, address, tokens)
	if err == nil {
		return balances, nil
	}
	if errors.Is(err, ErrMulticallNotImplemented) {
		f.logger.Debug("multicall unavailable, falling back to individual calls")
	} else {
		f.logger.WithError(err).Warn("multicall failed, falling back to individual calls")
	}

	return f.getTokenBalancesIndividual(ctx, address, tokens), nil
}

func (f *BalanceFetcher) getTokenBalancesMulticall(
	ctx context.Context,
	address string,
	tokens []balance.TokenInfo,
) ([]balance.RawBalance, error) {
	calls := make([]Call3, 0, len(tokens))
	for _, token := range tokens {
		data, err := packBalanceOf(address)
		if err != nil {
			return nil, err
		}
		calls = append(calls, Call3{
			Target:       ecommon.HexToAddress(token.Address),
			AllowFailure: true,
			CallData:     data,
		})
	}

	callData, err := encodeAggregate3(calls)
	if err != nil {
		return nil, err
	}

	res, err := f.rpc.Call(ctx, "eth_call", callArgs(Multicall3Address.Hex(), callData), "latest")
	if err != nil {
		return nil, fmt.Errorf("multicall eth_call: %w", err)
	}

	raw, err := hexutil.Decode(decodeHexResult(res))
	if err != nil {
		return nil, fmt.Errorf("multicall result: %w", err)
	}

	results, err := decodeAggregate3(raw)
	if err != nil {
		return nil, err
	}
	if len(results) != len(tokens) {
		return nil, fmt.Errorf("multicall returned %d results for %d calls", len(results), len(tokens))
	}

	balances := make([]balance.RawBalance, 0, len(tokens))
	for i, r := range results {
		if !r.Success {
			continue
		}
		balances = append(balances, balance.NewToken(address, tokens[i], balance.HexToBigIntString(hexutil.Encode(r.ReturnData))))
	}
	return balances, nil
}

func (f *BalanceFetcher) getTokenBalancesIndividual(
	ctx context.Context,
	address string,
	tokens []balance.TokenInfo,
) []balance.RawBalance {
	results := balance.Settle(ctx, tokens, f.concurrency, func(ctx context.Context, token balance.TokenInfo) (balance.RawBalance, error) {
		return f.getTokenBalance(ctx, address, token)
	})

	for i, r := range results {
		if r.Err != nil {
			f.recorder.RecordFetch(f.chain, balance.KindToken, balance.StatusError)
			f.logger.WithError(r.Err).WithField("token", tokens[i].Address).Debug("token balance dropped")
			continue
		}
		f.recorder.RecordFetch(f.chain, balance.KindToken, balance.StatusSuccess)
	}
	return balance.Successes(results)
}

func (f *BalanceFetcher) getTokenBalance(
	ctx context.Context,
	address string,
	token balance.TokenInfo,
) (balance.RawBalance, error) {
	data, err := packBalanceOf(address)
	if err != nil {
		return balance.RawBalance{}, err
	}

	res, err := f.rpc.Call(ctx, "eth_call", callArgs(token.Address, data), "latest")
	if err != nil {
		return balance.RawBalance{}, fmt.Errorf("failed to get ERC20 balance of %s: %w", token.Address, err)
	}

	return balance.NewToken(address, token, balance.HexToBigIntString(decodeHexResult(res))), nil
}

// packBalanceOf builds balanceOf(owner) calldata: the selector followed by
// the owner address left-padded to 32 bytes.
func packBalanceOf(owner string) ([]byte, error) {
	if !ecommon.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %q", owner)
	}

	data := make([]byte, 0, 4+32)
	data = append(data, balanceOfSelector...)
	data = append(data, ecommon.LeftPadBytes(ecommon.HexToAddress(owner).Bytes(), 32)...)
	return data, nil
}

func callArgs(to string, data []byte) map[string]string {
	return map[string]string{
		"to":   to,
		"data": hexutil.Encode(data),
	}
}

// decodeHexResult unwraps a JSON string result. Anything else becomes an
// empty string, which HexToBigIntString reads as zero.
func decodeHexResult(res json.RawMessage) string {
	var s string
	err := json.Unmarshal(res, &s)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
