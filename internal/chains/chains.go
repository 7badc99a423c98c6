package chains

import (
	"fmt"
	"strings"
)

// Chain is the alias a chain is routed and tagged by.
type Chain string

const (
	Ethereum    Chain = "ethereum"
	Arbitrum    Chain = "arbitrum"
	Avalanche   Chain = "avalanche"
	BscChain    Chain = "bsc"
	Base        Chain = "base"
	Blast       Chain = "blast"
	CronosChain Chain = "cronos"
	Optimism    Chain = "optimism"
	Polygon     Chain = "polygon"
	Zksync      Chain = "zksync"
	Bitcoin     Chain = "bitcoin"
	Litecoin    Chain = "litecoin"
	Dogecoin    Chain = "dogecoin"
	Solana      Chain = "solana"
	Tron        Chain = "tron"
	Ripple      Chain = "xrp"
)

func (c Chain) String() string {
	return string(c)
}

// Ecosystem groups chains sharing a calling and addressing convention.
type Ecosystem string

const (
	EVM  Ecosystem = "evm"
	UTXO Ecosystem = "utxo"
	SVM  Ecosystem = "svm"
	TVM  Ecosystem = "tvm"
	XRP  Ecosystem = "xrp"
)

// Curve is the signature curve used by addresses of an ecosystem.
type Curve string

const (
	Secp256k1 Curve = "secp256k1"
	Ed25519   Curve = "ed25519"
)

// NativeAsset describes the base currency of a chain.
type NativeAsset struct {
	Symbol   string
	Name     string
	Decimals int
}

// Metadata is the static description of a chain.
type Metadata struct {
	Chain     Chain
	Ecosystem Ecosystem
	Native    NativeAsset
	EvmID     int64
}

// DefaultEVMNative is used for EVM chains missing from the table.
var DefaultEVMNative = NativeAsset{Symbol: "ETH", Name: "Ether", Decimals: 18}

var table = map[Chain]Metadata{
	Ethereum:    {Chain: Ethereum, Ecosystem: EVM, EvmID: 1, Native: NativeAsset{"ETH", "Ether", 18}},
	Arbitrum:    {Chain: Arbitrum, Ecosystem: EVM, EvmID: 42161, Native: NativeAsset{"ETH", "Ether", 18}},
	Avalanche:   {Chain: Avalanche, Ecosystem: EVM, EvmID: 43114, Native: NativeAsset{"AVAX", "Avalanche", 18}},
	BscChain:    {Chain: BscChain, Ecosystem: EVM, EvmID: 56, Native: NativeAsset{"BNB", "BNB", 18}},
	Base:        {Chain: Base, Ecosystem: EVM, EvmID: 8453, Native: NativeAsset{"ETH", "Ether", 18}},
	Blast:       {Chain: Blast, Ecosystem: EVM, EvmID: 81457, Native: NativeAsset{"ETH", "Ether", 18}},
	CronosChain: {Chain: CronosChain, Ecosystem: EVM, EvmID: 25, Native: NativeAsset{"CRO", "Cronos", 18}},
	Optimism:    {Chain: Optimism, Ecosystem: EVM, EvmID: 10, Native: NativeAsset{"ETH", "Ether", 18}},
	Polygon:     {Chain: Polygon, Ecosystem: EVM, EvmID: 137, Native: NativeAsset{"POL", "Polygon", 18}},
	Zksync:      {Chain: Zksync, Ecosystem: EVM, EvmID: 324, Native: NativeAsset{"ETH", "Ether", 18}},
	Bitcoin:     {Chain: Bitcoin, Ecosystem: UTXO, Native: NativeAsset{"BTC", "Bitcoin", 8}},
	Litecoin:    {Chain: Litecoin, Ecosystem: UTXO, Native: NativeAsset{"LTC", "Litecoin", 8}},
	Dogecoin:    {Chain: Dogecoin, Ecosystem: UTXO, Native: NativeAsset{"DOGE", "Dogecoin", 8}},
	Solana:      {Chain: Solana, Ecosystem: SVM, Native: NativeAsset{"SOL", "Solana", 9}},
	Tron:        {Chain: Tron, Ecosystem: TVM, Native: NativeAsset{"TRX", "Tron", 6}},
	Ripple:      {Chain: Ripple, Ecosystem: XRP, Native: NativeAsset{"XRP", "XRP", 6}},
}

// Lookup returns the metadata of a chain alias. Aliases are case-insensitive.
func Lookup(alias string) (Metadata, bool) {
	m, ok := table[Chain(strings.ToLower(strings.TrimSpace(alias)))]
	return m, ok
}

// MustLookup is Lookup for aliases known at compile time.
func MustLookup(c Chain) Metadata {
	m, ok := table[c]
	if !ok {
		panic(fmt.Sprintf("chains: unknown chain %q", c))
	}
	return m
}

// NativeOf returns the native asset of an EVM chain, or DefaultEVMNative
// when the chain is not in the table.
func NativeOf(alias string) NativeAsset {
	m, ok := Lookup(alias)
	if !ok {
		return DefaultEVMNative
	}
	return m.Native
}

// Curve returns the signature curve of the chain's ecosystem.
func (m Metadata) Curve() Curve {
	switch m.Ecosystem {
	case SVM:
		return Ed25519
	default:
		return Secp256k1
	}
}

// SupportedEVMChains returns all EVM chains in the table.
func SupportedEVMChains() []Chain {
	return []Chain{
		Ethereum,
		Arbitrum,
		Avalanche,
		BscChain,
		Base,
		Blast,
		CronosChain,
		Optimism,
		Polygon,
		Zksync,
	}
}

// HasTokens reports whether the ecosystem supports contract or issued tokens.
func (e Ecosystem) HasTokens() bool {
	return e != UTXO
}

// All returns every chain in the table, EVM chains first.
func All() []Chain {
	return append(SupportedEVMChains(), Bitcoin, Litecoin, Dogecoin, Solana, Tron, Ripple)
}
