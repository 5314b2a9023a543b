package ledger

import (
	"sync"
	"time"

	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// ComplianceInfo records the verification state of one asset.
type ComplianceInfo struct {
	Verified       bool
	VerifiedAt     time.Time
	Verifier       types.AccountID
	ComplianceType string
}

// Ledger is the property-token ledger the custodian acts on. It keeps
// ownership, balances, metadata snapshots and compliance flags. The
// bridge core only ever touches it through the AssetLedger and
// ComplianceGate interfaces.
type Ledger struct {
	mu sync.RWMutex

	nextID      uint64
	owners      map[uint64]types.AccountID
	balances    map[balanceKey]uint64
	metadata    map[uint64]types.PropertyMetadata
	compliance  map[uint64]ComplianceInfo
	totalSupply uint64
}

type balanceKey struct {
	owner   types.AccountID
	assetID uint64
}

func New() *Ledger {
	return &Ledger{
		owners:     make(map[uint64]types.AccountID),
		balances:   make(map[balanceKey]uint64),
		metadata:   make(map[uint64]types.PropertyMetadata),
		compliance: make(map[uint64]ComplianceInfo),
	}
}

// RegisterProperty mints a token for the owner and snapshots the
// metadata. Compliance starts unverified.
func (l *Ledger) RegisterProperty(owner types.AccountID, metadata types.PropertyMetadata) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.owners[id] = owner
	l.balances[balanceKey{owner, id}] = 1
	l.metadata[id] = metadata
	l.compliance[id] = ComplianceInfo{}
	l.totalSupply++
	log.Info().Uint64("assetId", id).Str("owner", string(owner)).Msg("[Ledger] [RegisterProperty] property registered")
	return id
}

// VerifyCompliance flips the compliance flag for an asset. Callers are
// expected to gate this on their own authority model.
func (l *Ledger) VerifyCompliance(assetID uint64, verifier types.AccountID, complianceType string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[assetID]; !ok {
		return types.ErrAssetNotFound
	}
	l.compliance[assetID] = ComplianceInfo{
		Verified:       true,
		VerifiedAt:     time.Now(),
		Verifier:       verifier,
		ComplianceType: complianceType,
	}
	return nil
}

func (l *Ledger) IsVerified(assetID uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.compliance[assetID].Verified
}

func (l *Ledger) OwnerOf(assetID uint64) (types.AccountID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[assetID]
	if !ok {
		return "", types.ErrAssetNotFound
	}
	return owner, nil
}

func (l *Ledger) TransferOwnership(assetID uint64, to types.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[assetID]; !ok {
		return types.ErrAssetNotFound
	}
	l.owners[assetID] = to
	return nil
}

func (l *Ledger) SetBalance(owner types.AccountID, assetID uint64, balance uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[assetID]; !ok {
		return types.ErrAssetNotFound
	}
	l.balances[balanceKey{owner, assetID}] = balance
	return nil
}

func (l *Ledger) BalanceOf(owner types.AccountID, assetID uint64) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[balanceKey{owner, assetID}]
}

// Mint creates a fresh asset for the recipient. Bridged-in assets are
// seeded compliance-verified; the source chain vouched for them.
func (l *Ledger) Mint(recipient types.AccountID, metadata types.PropertyMetadata) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.owners[id] = recipient
	l.balances[balanceKey{recipient, id}] = 1
	l.metadata[id] = metadata
	l.compliance[id] = ComplianceInfo{
		Verified:       true,
		VerifiedAt:     time.Now(),
		ComplianceType: "Bridge",
	}
	l.totalSupply++
	return id, nil
}

// Burn permanently removes local ownership of an asset.
func (l *Ledger) Burn(assetID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[assetID]
	if !ok {
		return types.ErrAssetNotFound
	}
	delete(l.owners, assetID)
	delete(l.balances, balanceKey{owner, assetID})
	delete(l.metadata, assetID)
	delete(l.compliance, assetID)
	l.totalSupply--
	return nil
}

func (l *Ledger) MetadataOf(assetID uint64) (types.PropertyMetadata, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	metadata, ok := l.metadata[assetID]
	if !ok {
		return types.PropertyMetadata{}, types.ErrAssetNotFound
	}
	return metadata, nil
}

func (l *Ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}
