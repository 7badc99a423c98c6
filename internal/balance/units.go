package balance

import (
	"github.com/shopspring/decimal"
)

// FormatUnits converts a base-unit decimal string to a human-readable
// amount, e.g. "10000000" with 6 decimals -> "10". Unparseable input reads
// as "0".
func FormatUnits(amount string, decimals int) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "0"
	}
	return d.Shift(int32(-decimals)).String()
}

// ParseUnits converts a human-readable amount to base units, truncating
// digits beyond decimals, e.g. "10" with 6 decimals -> "10000000".
func ParseUnits(amount string, decimals int) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", err
	}
	return d.Shift(int32(decimals)).Truncate(0).String(), nil
}
