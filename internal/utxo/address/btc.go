package address

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

var btcScriptClasses = []txscript.ScriptClass{
	txscript.PubKeyHashTy,
	txscript.ScriptHashTy,
	txscript.WitnessV0PubKeyHashTy,
	txscript.WitnessV0ScriptHashTy,
	txscript.WitnessV1TaprootTy,
}

// BTCAddress is a Bitcoin mainnet address.
type BTCAddress struct {
	addr btcutil.Address
}

// NewBTCAddress parses a mainnet address in any standard encoding.
func NewBTCAddress(addrStr string) (*BTCAddress, error) {
	addr, err := decodeForNet(addrStr, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return &BTCAddress{addr: addr}, nil
}

func btcFromScript(script []byte) (*BTCAddress, error) {
	addr, err := extractAddress(script, &chaincfg.MainNetParams, btcScriptClasses...)
	if err != nil {
		return nil, err
	}
	return &BTCAddress{addr: addr}, nil
}

func (a *BTCAddress) String() string { return a.addr.EncodeAddress() }

func (a *BTCAddress) PayToAddrScript() ([]byte, error) {
	return txscript.PayToAddrScript(a.addr)
}
