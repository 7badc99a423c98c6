package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// UTXOAddress is a chain-agnostic address interface for UTXO chains.
type UTXOAddress interface {
	// String returns the human-readable address (chain-specific encoding)
	// e.g., "bc1q...", "ltc1q...", "D..."
	String() string

	// PayToAddrScript generates the scriptPubKey for paying to this address
	PayToAddrScript() ([]byte, error)
}

// decodeForNet decodes addrStr and rejects addresses of other networks.
func decodeForNet(addrStr string, params *chaincfg.Params) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(addrStr, params)
	if err != nil {
		return nil, err
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %s is not for network %s", addrStr, params.Name)
	}
	return addr, nil
}

// extractAddress returns the single address script pays to, provided its
// class is one of allowed.
func extractAddress(script []byte, params *chaincfg.Params, allowed ...txscript.ScriptClass) (btcutil.Address, error) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil {
		return nil, fmt.Errorf("failed to extract script addresses: %w", err)
	}
	if !hasClass(allowed, class) {
		return nil, fmt.Errorf("unsupported %s script: %s", params.Name, class)
	}
	if len(addrs) != 1 {
		return nil, fmt.Errorf("%s script resolves to %d addresses", class, len(addrs))
	}
	return addrs[0], nil
}

func hasClass[C comparable](allowed []C, class C) bool {
	for _, c := range allowed {
		if c == class {
			return true
		}
	}
	return false
}
