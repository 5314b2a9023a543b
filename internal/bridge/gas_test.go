package bridge_test

import (
	"testing"

	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestEstimateGas(t *testing.T) {
	cfg := &types.BridgeConfig{GasBudget: 1_000_000}

	t.Run("base budget without chain info", func(t *testing.T) {
		require.Equal(t, uint64(1_000_000), bridge.EstimateGas(cfg, nil, 0, 0))
	})

	t.Run("metadata and signature surcharges", func(t *testing.T) {
		// 100 gas per metadata byte, 2500 per signature.
		require.Equal(t, uint64(1_000_000+50*100+3*2500), bridge.EstimateGas(cfg, nil, 50, 3))
	})

	t.Run("chain multiplier scales the base only", func(t *testing.T) {
		chain := &types.ChainBridgeInfo{GasMultiplier: 150}
		require.Equal(t, uint64(1_500_000+10*100+2*2500), bridge.EstimateGas(cfg, chain, 10, 2))
	})

	t.Run("zero multiplier leaves the base untouched", func(t *testing.T) {
		chain := &types.ChainBridgeInfo{GasMultiplier: 0}
		require.Equal(t, uint64(1_000_000), bridge.EstimateGas(cfg, chain, 0, 0))
	})
}

func TestEstimateGasGrowsMonotonically(t *testing.T) {
	cfg := &types.BridgeConfig{GasBudget: 500_000}

	prev := uint64(0)
	for size := 0; size <= 1000; size += 250 {
		got := bridge.EstimateGas(cfg, nil, size, 2)
		require.Greater(t, got, prev)
		prev = got
	}
}
