package bridge

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// Administrative surface. Everything here is admin-gated except the
// read-only monitoring calls.

func (s *Service) SetEmergencyPause(admin types.AccountID, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	s.cfg.EmergencyPause = paused
	log.Info().Bool("paused", paused).Msg("[BridgeService] [SetEmergencyPause] pause flag updated")
	return nil
}

func (s *Service) UpdateConfig(admin types.AccountID, cfg types.BridgeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	if cfg.MinSignatures < 1 || cfg.MaxSignatures < cfg.MinSignatures {
		return types.ErrInsufficientSignatures
	}
	s.cfg = cfg
	for _, chain := range cfg.SupportedChains {
		if _, ok := s.chains[chain]; !ok {
			s.chains[chain] = types.ChainBridgeInfo{
				ChainID:            chain,
				Name:               string(chain),
				Active:             true,
				GasMultiplier:      100,
				ConfirmationBlocks: 6,
			}
		}
	}
	log.Info().Msg("[BridgeService] [UpdateConfig] config updated")
	return nil
}

func (s *Service) Config() types.BridgeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Service) UpdateChainInfo(admin types.AccountID, info types.ChainBridgeInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	s.chains[info.ChainID] = info
	return nil
}

func (s *Service) ChainInfo(chain types.ChainID) (types.ChainBridgeInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.chains[chain]
	return info, ok
}

func (s *Service) AddOperator(admin types.AccountID, operator types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	s.operators.AddOperator(operator)
	log.Info().Str("operator", string(operator)).Msg("[BridgeService] [AddOperator] operator added")
	return nil
}

func (s *Service) RemoveOperator(admin types.AccountID, operator types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	s.operators.RemoveOperator(operator)
	log.Info().Str("operator", string(operator)).Msg("[BridgeService] [RemoveOperator] operator removed")
	return nil
}

func (s *Service) Operators() []types.AccountID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.operators.Operators()
}

// MonitorStatus returns the read-only progress snapshot for a request.
func (s *Service) MonitorStatus(requestID uint64) (*types.MonitoringInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, err
	}
	return &types.MonitoringInfo{
		RequestID:           req.ID,
		AssetID:             req.AssetID,
		SourceChain:         req.SourceChain,
		DestinationChain:    req.DestinationChain,
		Status:              req.Status,
		CreatedAt:           req.CreatedAt,
		ExpiresAt:           req.ExpiresAt,
		SignaturesCollected: len(req.Signatures),
		SignaturesRequired:  req.RequiredSignatures,
	}, nil
}

// History returns the sender's append-only execution records.
func (s *Service) History(account types.AccountID) ([]types.BridgeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.History(account)
}

// VerifyTransaction reports whether a hash was produced by a successful
// execution on this bridge.
func (s *Service) VerifyTransaction(hash common.Hash) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.IsHashVerified(hash)
}

// EstimateBridgeGas gives the advisory cost of bridging an asset to the
// given chain, using the minimum signature threshold as the proxy.
func (s *Service) EstimateBridgeGas(assetID uint64, destinationChain types.ChainID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.SupportsChain(destinationChain) {
		return 0, types.ErrInvalidChain
	}
	metadata, err := s.ledger.MetadataOf(assetID)
	if err != nil {
		return 0, types.ErrAssetNotFound
	}
	chain, ok := s.chains[destinationChain]
	var chainInfo *types.ChainBridgeInfo
	if ok {
		chainInfo = &chain
	}
	return EstimateGas(&s.cfg, chainInfo, len(metadata.LegalDescription), s.cfg.MinSignatures), nil
}
