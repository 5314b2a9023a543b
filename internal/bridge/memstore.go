package bridge

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propchain/bridge/pkg/types"
)

type bridgedKey struct {
	chain   types.ChainID
	assetID uint64
}

// MemoryStore is the in-process state container. The service serializes
// every call, so no locking is needed here; the durable alternative
// lives in pkg/db.
type MemoryStore struct {
	requests      map[uint64]types.BridgeRequest
	activeByAsset map[uint64]uint64
	history       map[types.AccountID][]types.BridgeTransaction
	verified      map[common.Hash]bool
	bridged       map[bridgedKey]types.BridgedTokenInfo

	requestCounter     uint64
	transactionCounter uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests:      make(map[uint64]types.BridgeRequest),
		activeByAsset: make(map[uint64]uint64),
		history:       make(map[types.AccountID][]types.BridgeTransaction),
		verified:      make(map[common.Hash]bool),
		bridged:       make(map[bridgedKey]types.BridgedTokenInfo),
	}
}

func (s *MemoryStore) NextRequestID() (uint64, error) {
	s.requestCounter++
	return s.requestCounter, nil
}

func (s *MemoryStore) NextTransactionID() (uint64, error) {
	s.transactionCounter++
	return s.transactionCounter, nil
}

func (s *MemoryStore) SaveRequest(req *types.BridgeRequest) error {
	stored := *req
	stored.Signatures = append([]types.AccountID(nil), req.Signatures...)
	s.requests[req.ID] = stored

	if req.Status.Active() {
		s.activeByAsset[req.AssetID] = req.ID
	} else if s.activeByAsset[req.AssetID] == req.ID {
		delete(s.activeByAsset, req.AssetID)
	}
	return nil
}

// GetRequest returns a copy; callers mutate it freely and persist with
// SaveRequest, so a rejected call never leaks a partial write.
func (s *MemoryStore) GetRequest(id uint64) (*types.BridgeRequest, error) {
	stored, ok := s.requests[id]
	if !ok {
		return nil, types.ErrInvalidRequest
	}
	stored.Signatures = append([]types.AccountID(nil), stored.Signatures...)
	return &stored, nil
}

func (s *MemoryStore) ActiveRequestID(assetID uint64) (uint64, bool, error) {
	id, ok := s.activeByAsset[assetID]
	return id, ok, nil
}

func (s *MemoryStore) AppendTransaction(tx *types.BridgeTransaction) error {
	s.history[tx.Sender] = append(s.history[tx.Sender], *tx)
	return nil
}

func (s *MemoryStore) History(sender types.AccountID) ([]types.BridgeTransaction, error) {
	return append([]types.BridgeTransaction(nil), s.history[sender]...), nil
}

func (s *MemoryStore) MarkHashVerified(hash common.Hash) error {
	s.verified[hash] = true
	return nil
}

func (s *MemoryStore) IsHashVerified(hash common.Hash) (bool, error) {
	return s.verified[hash], nil
}

func (s *MemoryStore) SaveBridgedToken(info *types.BridgedTokenInfo) error {
	s.bridged[bridgedKey{info.DestinationChain, info.OriginalAssetID}] = *info
	return nil
}

func (s *MemoryStore) GetBridgedToken(chain types.ChainID, originalAssetID uint64) (*types.BridgedTokenInfo, error) {
	info, ok := s.bridged[bridgedKey{chain, originalAssetID}]
	if !ok {
		return nil, nil
	}
	return &info, nil
}
