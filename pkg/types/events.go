package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	EventBridgeRequestCreated   = "Bridge.RequestCreated"
	EventBridgeRequestSigned    = "Bridge.RequestSigned"
	EventBridgeRequestExecuted  = "Bridge.RequestExecuted"
	EventBridgeRequestFailed    = "Bridge.RequestFailed"
	EventBridgeRequestExpired   = "Bridge.RequestExpired"
	EventBridgeRequestRecovered = "Bridge.RequestRecovered"
	EventBridgeTokenMinted      = "Bridge.TokenMinted"
)

// EventEnvelope is the unit carried by the event bus. The off-chain
// relayer subscribes by destination chain and acts on RequestExecuted
// envelopes; everything else is observability.
type EventEnvelope struct {
	ID               string
	Event            string
	DestinationChain ChainID
	RequestID        uint64
	EmittedAt        time.Time
	Data             any
}

type RequestCreatedEvent struct {
	RequestID        uint64
	AssetID          uint64
	SourceChain      ChainID
	DestinationChain ChainID
	Requester        AccountID
}

type RequestSignedEvent struct {
	RequestID           uint64
	Signer              AccountID
	SignaturesCollected int
	SignaturesRequired  int
}

type RequestExecutedEvent struct {
	RequestID       uint64
	AssetID         uint64
	TransactionHash common.Hash
}

type RequestFailedEvent struct {
	RequestID uint64
	AssetID   uint64
	Reason    string
}

type RequestRecoveredEvent struct {
	RequestID uint64
	Action    RecoveryAction
}

type TokenMintedEvent struct {
	AssetID         uint64
	SourceChain     ChainID
	OriginalAssetID uint64
	Recipient       AccountID
	TransactionHash common.Hash
}
