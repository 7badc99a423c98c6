package address

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// dogeParams carries the Dogecoin mainnet base58 prefixes. Dogecoin has no
// segwit, so no bech32 prefix is set.
var dogeParams = chaincfg.Params{
	Name:             "dogecoin-mainnet",
	Net:              0xc0c0c0c0,
	PubKeyHashAddrID: 0x1e, // D
	ScriptHashAddrID: 0x16, // 9 or A
}

// DOGEAddress is a Dogecoin mainnet P2PKH or P2SH address.
type DOGEAddress struct {
	addr btcutil.Address
}

func NewDOGEAddress(addrStr string) (*DOGEAddress, error) {
	addr, err := decodeForNet(addrStr, &dogeParams)
	if err != nil {
		return nil, err
	}
	return &DOGEAddress{addr: addr}, nil
}

func dogeFromScript(script []byte) (*DOGEAddress, error) {
	addr, err := extractAddress(script, &dogeParams, txscript.PubKeyHashTy, txscript.ScriptHashTy)
	if err != nil {
		return nil, err
	}
	return &DOGEAddress{addr: addr}, nil
}

func (a *DOGEAddress) String() string { return a.addr.EncodeAddress() }

func (a *DOGEAddress) PayToAddrScript() ([]byte, error) {
	return txscript.PayToAddrScript(a.addr)
}
