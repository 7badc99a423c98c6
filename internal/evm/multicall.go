package evm

import (
	"errors"

	ecommon "github.com/ethereum/go-ethereum/common"
)

// Multicall3Address is the Multicall3 deployment shared by all EVM chains.
var Multicall3Address = ecommon.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

// ErrMulticallNotImplemented is returned by the aggregate3 codec. Callers
// treat it as "use individual calls", never as a transport failure.
var ErrMulticallNotImplemented = errors.New("multicall aggregate3 encoding not implemented")

// Call3 is one aggregate3 sub-call.
type Call3 struct {
	Target       ecommon.Address
	AllowFailure bool
	CallData     []byte
}

// Call3Result is one aggregate3 sub-result.
type Call3Result struct {
	Success    bool
	ReturnData []byte
}

// TODO: implement aggregate3 ABI encoding once the target multicall ABI
// version is confirmed for every configured chain.
func encodeAggregate3(_ []Call3) ([]byte, error) {
	return nil, ErrMulticallNotImplemented
}

func decodeAggregate3(_ []byte) ([]Call3Result, error) {
	return nil, ErrMulticallNotImplemented
}
