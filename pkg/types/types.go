package types

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AccountID identifies an account on any of the connected chains.
// Identity is asserted by the calling context, never verified here.
type AccountID string

// ChainID identifies a ledger, e.g. "propchain|1" or "evm|11155111".
type ChainID string

// SentinelAccount holds custody of locked assets while a bridge is in flight.
var SentinelAccount = AccountID("0x0000000000000000000000000000000000000000")

type RequestStatus int

const (
	StatusPending RequestStatus = iota
	StatusLocked
	StatusInTransit
	StatusCompleted
	StatusFailed
	StatusExpired
)

func (s RequestStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLocked:
		return "locked"
	case StatusInTransit:
		return "in_transit"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Active reports whether a request in this status still blocks new
// requests for the same asset.
func (s RequestStatus) Active() bool {
	return s == StatusPending || s == StatusLocked
}

func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

type RecoveryAction int

const (
	RecoveryUnlockToken RecoveryAction = iota
	RecoveryRefundGas
	RecoveryRetryBridge
	RecoveryCancelBridge
)

func (a RecoveryAction) String() string {
	switch a {
	case RecoveryUnlockToken:
		return "unlock_token"
	case RecoveryRefundGas:
		return "refund_gas"
	case RecoveryRetryBridge:
		return "retry_bridge"
	case RecoveryCancelBridge:
		return "cancel_bridge"
	default:
		return "unknown"
	}
}

// ParseRecoveryAction maps the wire form back onto the action enum.
func ParseRecoveryAction(s string) (RecoveryAction, error) {
	switch s {
	case "unlock_token":
		return RecoveryUnlockToken, nil
	case "refund_gas":
		return RecoveryRefundGas, nil
	case "retry_bridge":
		return RecoveryRetryBridge, nil
	case "cancel_bridge":
		return RecoveryCancelBridge, nil
	default:
		return 0, fmt.Errorf("unknown recovery action %q", s)
	}
}

// PropertyMetadata is the descriptive payload carried with a tokenized
// property. A request stores an immutable snapshot taken at creation.
type PropertyMetadata struct {
	Location         string `json:"location"`
	Size             uint64 `json:"size"`
	LegalDescription string `json:"legal_description"`
	Valuation        uint64 `json:"valuation"`
	DocumentsURL     string `json:"documents_url"`
}

// BridgeRequest is the unit of work of the bridge protocol.
type BridgeRequest struct {
	ID                 uint64
	AssetID            uint64
	SourceChain        ChainID
	DestinationChain   ChainID
	Sender             AccountID
	Recipient          AccountID
	RequiredSignatures int
	// Signatures holds distinct signer identities in arrival order.
	Signatures []AccountID
	CreatedAt  time.Time
	ExpiresAt  *time.Time
	Status     RequestStatus
	Metadata   PropertyMetadata
}

// Expired reports whether the request's deadline has passed at now.
// Requests without a deadline never expire.
func (r *BridgeRequest) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// BridgeTransaction is the immutable record of one successful execution,
// appended to the sender's history and never mutated afterwards.
type BridgeTransaction struct {
	ID               uint64
	RequestID        uint64
	AssetID          uint64
	SourceChain      ChainID
	DestinationChain ChainID
	Sender           AccountID
	Recipient        AccountID
	TxHash           common.Hash
	Timestamp        time.Time
	GasUsed          uint64
	Status           RequestStatus
	Metadata         PropertyMetadata
}

type BridgingStatus int

const (
	BridgingInTransit BridgingStatus = iota
	BridgingCompleted
	BridgingLocked
)

// BridgedTokenInfo tracks an asset that crossed chains, keyed by
// (chain, original asset id) in the request store.
type BridgedTokenInfo struct {
	OriginalChain      ChainID
	OriginalAssetID    uint64
	DestinationChain   ChainID
	DestinationAssetID uint64
	BridgedAt          time.Time
	Status             BridgingStatus
}

// ChainBridgeInfo describes one supported destination chain.
type ChainBridgeInfo struct {
	ChainID ChainID
	Name    string
	Active  bool
	// GasMultiplier scales the configured gas budget, in percent.
	GasMultiplier      uint64
	ConfirmationBlocks int
}

// BridgeConfig holds the protocol tunables. Read on every validation,
// mutated only through the admin surface.
type BridgeConfig struct {
	SupportedChains []ChainID
	MinSignatures   int
	MaxSignatures   int
	DefaultTimeout  time.Duration
	GasBudget       uint64
	EmergencyPause  bool
}

func (c *BridgeConfig) SupportsChain(chain ChainID) bool {
	for _, id := range c.SupportedChains {
		if id == chain {
			return true
		}
	}
	return false
}

// MonitoringInfo is the read-only snapshot returned to operators polling
// a request's progress.
type MonitoringInfo struct {
	RequestID           uint64
	AssetID             uint64
	SourceChain         ChainID
	DestinationChain    ChainID
	Status              RequestStatus
	CreatedAt           time.Time
	ExpiresAt           *time.Time
	SignaturesCollected int
	SignaturesRequired  int
}
