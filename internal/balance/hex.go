package balance

import (
	"math/big"
	"strings"
)

// HexToBigIntString converts a hex-encoded unsigned integer, as returned by
// JSON-RPC nodes, into its decimal string. Empty, "0x" and "0x0" are zero.
// Anything that does not parse as unsigned hex also yields "0".
func HexToBigIntString(h string) string {
	if h == "" || h == "0x" || h == "0x0" {
		return "0"
	}

	digits := h
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if digits == "" {
		return "0"
	}

	for _, c := range digits {
		if !isHexDigit(c) {
			return "0"
		}
	}

	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return "0"
	}
	return n.String()
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
