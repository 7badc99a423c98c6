package balance

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexToBigIntString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "0"},
		{"bare prefix", "0x", "0"},
		{"zero", "0x0", "0"},
		{"padded zero", "0x0000000000000000000000000000000000000000000000000000000000000000", "0"},
		{"one wei", "0x1", "1"},
		{"one ether", "0xde0b6b3a7640000", "1000000000000000000"},
		{"no prefix", "ff", "255"},
		{"upper prefix", "0XFF", "255"},
		{"padded abi word", "0x00000000000000000000000000000000000000000000000000000000000f4240", "1000000"},
		{"beyond uint64", "0x10000000000000000", "18446744073709551616"},
		{"max uint256", "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			"115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		{"non hex digits", "0xzz", "0"},
		{"negative", "-0x1", "0"},
		{"whitespace", " 0x1", "0"},
		{"double prefix", "0x0x1", "0"},
		{"decimal noise", "12.5", "0"},
		{"json null", "null", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HexToBigIntString(tt.in))
		})
	}
}

func TestHexToBigIntString_RoundTrip(t *testing.T) {
	values := []string{
		"0",
		"1",
		"1000000",
		"18446744073709551615",
		"340282366920938463463374607431768211456",
	}

	for _, v := range values {
		n, ok := new(big.Int).SetString(v, 10)
		require.True(t, ok)

		require.Equal(t, v, HexToBigIntString("0x"+n.Text(16)))
		require.Equal(t, v, HexToBigIntString(n.Text(16)))
	}
}

func TestNewNative(t *testing.T) {
	b := NewNative("0xabc", "", 18, "ETH", "")

	require.True(t, b.IsNative)
	require.Nil(t, b.TokenAddress)
	require.Equal(t, "0", b.Balance)
	require.Equal(t, "ETH", b.Name)
}

func TestNewToken(t *testing.T) {
	token := TokenInfo{Address: "0xtoken", Decimals: 6, Symbol: "USDC"}
	b := NewToken("0xabc", token, "42")

	require.False(t, b.IsNative)
	require.NotNil(t, b.TokenAddress)
	require.Equal(t, "0xtoken", *b.TokenAddress)
	require.Equal(t, "42", b.Balance)
	require.Equal(t, 6, b.Decimals)
	require.Equal(t, "USDC", b.Name)

	token.Address = "0xchanged"
	require.Equal(t, "0xtoken", *b.TokenAddress)
}
