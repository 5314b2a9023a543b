package bridge

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propchain/bridge/pkg/types"
)

// AssetLedger exposes the ownership and balance primitives the
// custodian acts on. The protocol never manipulates ledger storage
// directly.
type AssetLedger interface {
	OwnerOf(assetID uint64) (types.AccountID, error)
	TransferOwnership(assetID uint64, to types.AccountID) error
	SetBalance(owner types.AccountID, assetID uint64, balance uint64) error
	Mint(recipient types.AccountID, metadata types.PropertyMetadata) (uint64, error)
	Burn(assetID uint64) error
	MetadataOf(assetID uint64) (types.PropertyMetadata, error)
}

// ComplianceGate is consulted, never set, before a request is created.
type ComplianceGate interface {
	IsVerified(assetID uint64) bool
}

// OperatorRegistry answers whether an identity may sign or execute.
type OperatorRegistry interface {
	IsOperator(account types.AccountID) bool
	AddOperator(account types.AccountID)
	RemoveOperator(account types.AccountID)
	Operators() []types.AccountID
}

// EventSink receives one structured notification per transition. It is
// the sole channel by which the off-chain relayer learns a request
// completed.
type EventSink interface {
	Publish(envelope *types.EventEnvelope)
}

// Store is the explicit state container of the protocol: requests, the
// active-request-per-asset index, per-sender history, the verified hash
// set and bridged-token records. SaveRequest maintains the active index
// together with the status write, so the two can never drift.
type Store interface {
	NextRequestID() (uint64, error)
	NextTransactionID() (uint64, error)

	SaveRequest(req *types.BridgeRequest) error
	GetRequest(id uint64) (*types.BridgeRequest, error)
	ActiveRequestID(assetID uint64) (uint64, bool, error)

	AppendTransaction(tx *types.BridgeTransaction) error
	History(sender types.AccountID) ([]types.BridgeTransaction, error)

	MarkHashVerified(hash common.Hash) error
	IsHashVerified(hash common.Hash) (bool, error)

	SaveBridgedToken(info *types.BridgedTokenInfo) error
	GetBridgedToken(chain types.ChainID, originalAssetID uint64) (*types.BridgedTokenInfo, error)
}
