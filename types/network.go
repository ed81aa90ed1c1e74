package types

// ChainFamily classifies a network into a blockchain family.
type ChainFamily string

const (
	ChainEVM    ChainFamily = "evm"
	ChainSolana ChainFamily = "solana"
)

// Network represents supported blockchain networks
type Network string

const (
	// EVM Networks
	NetworkEthereum    Network = "ethereum"
	NetworkPolygon     Network = "polygon"
	NetworkPolygonAmoy Network = "polygon-amoy" // testnet
	NetworkBase        Network = "base"
	NetworkBaseSepolia Network = "base-sepolia" // testnet
	NetworkLocalhost   Network = "localhost"    // local dev node

	// Solana Networks
	NetworkSolanaMainnet Network = "solana-mainnet"
	NetworkSolanaDevnet  Network = "solana-devnet" // testnet
)

func (n Network) String() string {
	return string(n)
}

// Family returns the blockchain family a network belongs to.
func (n Network) Family() ChainFamily {
	if n.IsSolana() {
		return ChainSolana
	}
	return ChainEVM
}

// IsEVM returns true for EVM-compatible networks.
func (n Network) IsEVM() bool {
	return !n.IsSolana()
}

// IsSolana returns true for Solana networks.
func (n Network) IsSolana() bool {
	switch n {
	case NetworkSolanaMainnet, NetworkSolanaDevnet:
		return true
	}
	return false
}
