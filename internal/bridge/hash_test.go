package bridge_test

import (
	"testing"
	"time"

	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/types"
	"github.com/stretchr/testify/require"
)

func sampleRequest() *types.BridgeRequest {
	return &types.BridgeRequest{
		ID:               7,
		AssetID:          42,
		SourceChain:      sourceChain,
		DestinationChain: destChain,
		Sender:           alice,
		Recipient:        bob,
	}
}

func TestGenerateTransactionHashIsDeterministic(t *testing.T) {
	executedAt := time.Unix(1700000000, 0).UTC()

	first := bridge.GenerateTransactionHash(sampleRequest(), executedAt)
	second := bridge.GenerateTransactionHash(sampleRequest(), executedAt)
	require.Equal(t, first, second)
}

func TestGenerateTransactionHashIsSensitiveToEveryField(t *testing.T) {
	executedAt := time.Unix(1700000000, 0).UTC()
	base := bridge.GenerateTransactionHash(sampleRequest(), executedAt)

	mutations := map[string]func(*types.BridgeRequest){
		"id":          func(r *types.BridgeRequest) { r.ID = 8 },
		"asset":       func(r *types.BridgeRequest) { r.AssetID = 43 },
		"source":      func(r *types.BridgeRequest) { r.SourceChain = "propchain|2" },
		"destination": func(r *types.BridgeRequest) { r.DestinationChain = "evm|137" },
		"sender":      func(r *types.BridgeRequest) { r.Sender = bob },
		"recipient":   func(r *types.BridgeRequest) { r.Recipient = alice },
	}
	for name, mutate := range mutations {
		req := sampleRequest()
		mutate(req)
		require.NotEqual(t, base, bridge.GenerateTransactionHash(req, executedAt), "mutating %s must change the hash", name)
	}

	require.NotEqual(t, base, bridge.GenerateTransactionHash(sampleRequest(), executedAt.Add(time.Millisecond)))
}

func TestGenerateTransactionHashFieldBoundaries(t *testing.T) {
	executedAt := time.Unix(1700000000, 0).UTC()

	// Length-prefixed encoding: shifting a byte across the field
	// boundary must not collide.
	a := sampleRequest()
	a.Sender = "ab"
	a.Recipient = "c"
	b := sampleRequest()
	b.Sender = "a"
	b.Recipient = "bc"
	require.NotEqual(t,
		bridge.GenerateTransactionHash(a, executedAt),
		bridge.GenerateTransactionHash(b, executedAt),
	)
}
