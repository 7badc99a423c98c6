package address

import (
	"fmt"

	ltcchaincfg "github.com/ltcsuite/ltcd/chaincfg"
	"github.com/ltcsuite/ltcd/ltcutil"
	ltctxscript "github.com/ltcsuite/ltcd/txscript"
)

var ltcScriptClasses = []ltctxscript.ScriptClass{
	ltctxscript.PubKeyHashTy,
	ltctxscript.ScriptHashTy,
	ltctxscript.WitnessV0PubKeyHashTy,
	ltctxscript.WitnessV0ScriptHashTy,
}

// LTCAddress is a Litecoin mainnet address.
type LTCAddress struct {
	addr ltcutil.Address
}

func NewLTCAddress(addrStr string) (*LTCAddress, error) {
	params := &ltcchaincfg.MainNetParams
	addr, err := ltcutil.DecodeAddress(addrStr, params)
	if err != nil {
		return nil, err
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %s is not for network %s", addrStr, params.Name)
	}
	return &LTCAddress{addr: addr}, nil
}

func ltcFromScript(script []byte) (*LTCAddress, error) {
	params := &ltcchaincfg.MainNetParams
	class, addrs, _, err := ltctxscript.ExtractPkScriptAddrs(script, params)
	if err != nil {
		return nil, fmt.Errorf("failed to extract script addresses: %w", err)
	}
	if !hasClass(ltcScriptClasses, class) {
		return nil, fmt.Errorf("unsupported %s script: %s", params.Name, class)
	}
	if len(addrs) != 1 {
		return nil, fmt.Errorf("%s script resolves to %d addresses", class, len(addrs))
	}
	return &LTCAddress{addr: addrs[0]}, nil
}

func (a *LTCAddress) String() string { return a.addr.String() }

func (a *LTCAddress) PayToAddrScript() ([]byte, error) {
	return ltctxscript.PayToAddrScript(a.addr)
}
