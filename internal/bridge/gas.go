package bridge

import (
	"github.com/propchain/bridge/pkg/types"
)

const (
	// Surcharge per byte of legal description carried to the
	// destination chain.
	metadataGasPerByte = 100
	// Flat surcharge per required operator signature.
	gasPerSignature = 2500
)

// EstimateGas is the advisory cost function for one bridge operation:
// the configured budget scaled by the destination chain's multiplier,
// plus a per-byte surcharge on the legal description and a flat
// surcharge per required signature. Pure; no side effects.
func EstimateGas(cfg *types.BridgeConfig, chain *types.ChainBridgeInfo, metadataSize int, requiredSignatures int) uint64 {
	base := cfg.GasBudget
	if chain != nil && chain.GasMultiplier > 0 {
		base = base * chain.GasMultiplier / 100
	}
	return base + uint64(metadataSize)*metadataGasPerByte + uint64(requiredSignatures)*gasPerSignature
}
