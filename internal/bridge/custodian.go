package bridge

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// Custodian moves the bridged asset in and out of custody on the local
// ledger. Locking reassigns the owner-of-record to the sentinel account
// and zeroes the holder's balance; only Unlock reverses that.
type Custodian struct {
	ledger AssetLedger
	store  Store
	// localChain identifies the ledger this custodian acts on; bridged
	// records written by the source side are keyed by it.
	localChain types.ChainID
	sink       EventSink
	now        func() time.Time
}

func NewCustodian(ledger AssetLedger, store Store, localChain types.ChainID, sink EventSink) *Custodian {
	return &Custodian{
		ledger:     ledger,
		store:      store,
		localChain: localChain,
		sink:       sink,
		now:        time.Now,
	}
}

func (c *Custodian) Lock(assetID uint64) error {
	owner, err := c.ledger.OwnerOf(assetID)
	if err != nil {
		return fmt.Errorf("failed to resolve owner of asset %d: %w", assetID, err)
	}
	if err := c.ledger.SetBalance(owner, assetID, 0); err != nil {
		return fmt.Errorf("failed to zero balance of asset %d: %w", assetID, err)
	}
	if err := c.ledger.TransferOwnership(assetID, types.SentinelAccount); err != nil {
		return fmt.Errorf("failed to move asset %d into custody: %w", assetID, err)
	}
	log.Info().Uint64("assetId", assetID).Msg("[Custodian] [Lock] asset moved into custody")
	return nil
}

func (c *Custodian) Unlock(assetID uint64, to types.AccountID) error {
	if err := c.ledger.TransferOwnership(assetID, to); err != nil {
		return fmt.Errorf("failed to release asset %d from custody: %w", assetID, err)
	}
	if err := c.ledger.SetBalance(to, assetID, 1); err != nil {
		return fmt.Errorf("failed to restore balance of asset %d: %w", assetID, err)
	}
	log.Info().Uint64("assetId", assetID).Str("to", string(to)).Msg("[Custodian] [Unlock] asset released from custody")
	return nil
}

// Held reports whether the asset currently sits with the sentinel.
func (c *Custodian) Held(assetID uint64) bool {
	owner, err := c.ledger.OwnerOf(assetID)
	return err == nil && owner == types.SentinelAccount
}

// MintFromBridge is the destination-side relayer entry point. The
// transaction hash must have been marked verified by a prior execution;
// a fresh local asset is minted for the recipient and the bridged
// record is marked Completed.
func (c *Custodian) MintFromBridge(sourceChain types.ChainID, originalAssetID uint64, recipient types.AccountID, metadata types.PropertyMetadata, txHash common.Hash) (uint64, error) {
	verified, err := c.store.IsHashVerified(txHash)
	if err != nil {
		return 0, err
	}
	if !verified {
		return 0, types.ErrInvalidRequest
	}

	newAssetID, err := c.ledger.Mint(recipient, metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to mint bridged asset: %w", err)
	}

	record, err := c.store.GetBridgedToken(c.localChain, originalAssetID)
	if err != nil {
		return 0, err
	}
	if record == nil {
		record = &types.BridgedTokenInfo{
			OriginalChain:    sourceChain,
			OriginalAssetID:  originalAssetID,
			DestinationChain: c.localChain,
			BridgedAt:        c.now(),
		}
	}
	record.DestinationAssetID = newAssetID
	record.Status = types.BridgingCompleted
	if err := c.store.SaveBridgedToken(record); err != nil {
		return 0, err
	}

	c.sink.Publish(&types.EventEnvelope{
		ID:               uuid.New().String(),
		Event:            types.EventBridgeTokenMinted,
		DestinationChain: c.localChain,
		EmittedAt:        c.now(),
		Data: types.TokenMintedEvent{
			AssetID:         newAssetID,
			SourceChain:     sourceChain,
			OriginalAssetID: originalAssetID,
			Recipient:       recipient,
			TransactionHash: txHash,
		},
	})
	log.Info().
		Uint64("assetId", newAssetID).
		Uint64("originalAssetId", originalAssetID).
		Str("sourceChain", string(sourceChain)).
		Msg("[Custodian] [MintFromBridge] bridged asset minted")
	return newAssetID, nil
}

// BurnForReturn removes the local bridged copy ahead of a return trip.
// Valid only while the bridged record for (chain, originalAssetID) is
// Completed; the record flips back to Locked until the asset lands on
// its original chain again.
func (c *Custodian) BurnForReturn(originalAssetID uint64, chain types.ChainID, recipient types.AccountID) error {
	record, err := c.store.GetBridgedToken(chain, originalAssetID)
	if err != nil {
		return err
	}
	if record == nil || record.Status != types.BridgingCompleted {
		return types.ErrInvalidRequest
	}

	localAssetID := record.DestinationAssetID
	if localAssetID == 0 {
		localAssetID = originalAssetID
	}
	if err := c.ledger.Burn(localAssetID); err != nil {
		return fmt.Errorf("failed to burn bridged asset %d: %w", localAssetID, err)
	}

	record.Status = types.BridgingLocked
	if err := c.store.SaveBridgedToken(record); err != nil {
		return err
	}
	log.Info().
		Uint64("assetId", localAssetID).
		Str("recipient", string(recipient)).
		Msg("[Custodian] [BurnForReturn] bridged asset burned for return trip")
	return nil
}
