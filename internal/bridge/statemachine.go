package bridge

import (
	"github.com/propchain/bridge/pkg/types"
)

// transitions is the single lifecycle table shared by every custodial
// context. A request starts Pending; Completed is terminal; Failed and
// Expired can only leave through a recovery action.
//
//	Pending -> Locked | Failed | Expired
//	Locked  -> Completed | Expired
//	Failed  -> Pending (retry) | Failed (cancel)
//	Expired -> Pending (retry) | Failed (cancel)
var transitions = map[types.RequestStatus][]types.RequestStatus{
	types.StatusPending: {types.StatusLocked, types.StatusFailed, types.StatusExpired},
	types.StatusLocked:  {types.StatusCompleted, types.StatusExpired},
	types.StatusFailed:  {types.StatusPending, types.StatusFailed},
	types.StatusExpired: {types.StatusPending, types.StatusFailed},
}

// CanTransition reports whether the lifecycle allows moving from one
// status to another.
func CanTransition(from, to types.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a status change to the request, rejecting moves the
// lifecycle table does not allow. The request is untouched on error.
func Transition(req *types.BridgeRequest, to types.RequestStatus) error {
	if !CanTransition(req.Status, to) {
		return types.ErrInvalidRequest
	}
	req.Status = to
	return nil
}
