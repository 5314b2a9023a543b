package bridge

import (
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// Recover applies an admin-directed remediation to a terminally Failed
// or Expired request. Any other status is rejected.
func (s *Service) Recover(requestID uint64, action types.RecoveryAction, admin types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin != s.admin {
		return types.ErrUnauthorized
	}
	req, err := s.store.GetRequest(requestID)
	if err != nil {
		return err
	}
	if req.Status != types.StatusFailed && req.Status != types.StatusExpired {
		return types.ErrInvalidRequest
	}

	switch action {
	case types.RecoveryUnlockToken:
		if s.custodian.Held(req.AssetID) {
			if err := s.custodian.Unlock(req.AssetID, req.Sender); err != nil {
				return err
			}
		}

	case types.RecoveryRefundGas:
		// Accounting hook only; no value transfer happens here.
		log.Info().
			Uint64("requestId", req.ID).
			Str("sender", string(req.Sender)).
			Msg("[RecoveryEngine] [Recover] gas refund recorded")

	case types.RecoveryRetryBridge:
		// The asset may have gained a fresh request since this one
		// failed; reviving the old one would put two active requests on
		// the same asset.
		if _, active, err := s.store.ActiveRequestID(req.AssetID); err != nil {
			return err
		} else if active {
			return types.ErrDuplicateRequest
		}
		if err := Transition(req, types.StatusPending); err != nil {
			return err
		}
		req.Signatures = nil
		// A stale deadline would expire the retry on its first touch,
		// so the window restarts from now.
		if s.cfg.DefaultTimeout > 0 {
			deadline := s.now().Add(s.cfg.DefaultTimeout)
			req.ExpiresAt = &deadline
		} else {
			req.ExpiresAt = nil
		}
		if err := s.store.SaveRequest(req); err != nil {
			return err
		}

	case types.RecoveryCancelBridge:
		if err := Transition(req, types.StatusFailed); err != nil {
			return err
		}
		if s.custodian.Held(req.AssetID) {
			if err := s.custodian.Unlock(req.AssetID, req.Sender); err != nil {
				return err
			}
		}
		if err := s.store.SaveRequest(req); err != nil {
			return err
		}

	default:
		return types.ErrInvalidRequest
	}

	s.emit(types.EventBridgeRequestRecovered, req.DestinationChain, req.ID, types.RequestRecoveredEvent{
		RequestID: req.ID,
		Action:    action,
	})
	log.Info().
		Uint64("requestId", req.ID).
		Str("action", action.String()).
		Msg("[RecoveryEngine] [Recover] recovery action applied")
	return nil
}
