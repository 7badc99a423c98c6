package address

import (
	"fmt"

	"github.com/vultisig/balances/internal/chains"
)

// Supported reports whether chain has a UTXO address codec.
func Supported(chain chains.Chain) bool {
	switch chain {
	case chains.Bitcoin, chains.Litecoin, chains.Dogecoin:
		return true
	default:
		return false
	}
}

// NewFromString creates a UTXOAddress from an address string based on chain.
func NewFromString(chain chains.Chain, addrStr string) (UTXOAddress, error) {
	switch chain {
	case chains.Bitcoin:
		return NewBTCAddress(addrStr)
	case chains.Litecoin:
		return NewLTCAddress(addrStr)
	case chains.Dogecoin:
		return NewDOGEAddress(addrStr)
	default:
		return nil, fmt.Errorf("unsupported UTXO chain: %s", chain)
	}
}

// NewFromScript resolves the single address an output script pays to.
// Bare pubkey, multisig and data scripts are rejected.
func NewFromScript(chain chains.Chain, script []byte) (UTXOAddress, error) {
	switch chain {
	case chains.Bitcoin:
		return btcFromScript(script)
	case chains.Litecoin:
		return ltcFromScript(script)
	case chains.Dogecoin:
		return dogeFromScript(script)
	default:
		return nil, fmt.Errorf("unsupported UTXO chain: %s", chain)
	}
}
