package models

import (
	"time"
)

// BridgeRequest is the persisted unit of work. Signatures live in their
// own table to preserve arrival order and signer uniqueness.
type BridgeRequest struct {
	ID                 uint64 `gorm:"primaryKey"`
	AssetID            uint64 `gorm:"index"`
	SourceChain        string `gorm:"type:varchar(255)"`
	DestinationChain   string `gorm:"type:varchar(255)"`
	Sender             string `gorm:"type:varchar(255);index"`
	Recipient          string `gorm:"type:varchar(255)"`
	RequiredSignatures int
	Status             int       `gorm:"default:0"`
	CreatedAt          time.Time `gorm:"type:timestamp(6)"`
	ExpiresAt          *time.Time
	UpdatedAt          time.Time `gorm:"type:timestamp(6);default:current_timestamp(6)"`

	// Metadata snapshot, flattened.
	Location         string `gorm:"type:varchar(255)"`
	Size             uint64
	LegalDescription string
	Valuation        uint64
	DocumentsURL     string `gorm:"type:varchar(255)"`

	Signatures []BridgeSignature `gorm:"foreignKey:RequestID"`
}

type BridgeSignature struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RequestID uint64 `gorm:"uniqueIndex:idx_request_signer"`
	Signer    string `gorm:"type:varchar(255);uniqueIndex:idx_request_signer"`
	// Ordinal preserves arrival order; signature order is exactly call
	// order.
	Ordinal   int
	CreatedAt time.Time `gorm:"type:timestamp(6);default:current_timestamp(6)"`
}

// BridgeTransaction rows are append-only; they are never updated or
// deleted after a successful execution writes them.
type BridgeTransaction struct {
	ID               uint64 `gorm:"primaryKey"`
	RequestID        uint64 `gorm:"index"`
	AssetID          uint64
	SourceChain      string `gorm:"type:varchar(255)"`
	DestinationChain string `gorm:"type:varchar(255)"`
	Sender           string `gorm:"type:varchar(255);index"`
	Recipient        string `gorm:"type:varchar(255)"`
	TxHash           string `gorm:"type:varchar(66);uniqueIndex"`
	Timestamp        time.Time
	GasUsed          uint64
	Status           int

	Location         string `gorm:"type:varchar(255)"`
	Size             uint64
	LegalDescription string
	Valuation        uint64
	DocumentsURL     string `gorm:"type:varchar(255)"`
}

// VerifiedHash is the global set of execution fingerprints the
// destination-side mint entry point consults.
type VerifiedHash struct {
	Hash      string    `gorm:"primaryKey;type:varchar(66)"`
	CreatedAt time.Time `gorm:"type:timestamp(6);default:current_timestamp(6)"`
}

// ActiveRequest is the secondary index enforcing one active request per
// asset; maintained in the same transaction as the request status.
type ActiveRequest struct {
	AssetID   uint64 `gorm:"primaryKey"`
	RequestID uint64
}

type BridgedToken struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement"`
	Chain              string `gorm:"type:varchar(255);uniqueIndex:idx_chain_asset"`
	OriginalAssetID    uint64 `gorm:"uniqueIndex:idx_chain_asset"`
	OriginalChain      string `gorm:"type:varchar(255)"`
	DestinationAssetID uint64
	BridgedAt          time.Time
	Status             int
}

// Counter backs the strictly monotonic request and transaction ids.
type Counter struct {
	Name  string `gorm:"primaryKey;type:varchar(64)"`
	Value uint64
}
