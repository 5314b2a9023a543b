package bridge

import (
	"github.com/propchain/bridge/pkg/types"
)

// QuorumTracker keeps the ordered distinct signer list for one request
// together with its threshold. Membership tests are linear; the list is
// bounded by the configured maximum signature count.
type QuorumTracker struct {
	threshold int
	signers   []types.AccountID
}

func NewQuorumTracker(threshold int, signers []types.AccountID) *QuorumTracker {
	return &QuorumTracker{threshold: threshold, signers: signers}
}

func (t *QuorumTracker) Has(signer types.AccountID) bool {
	for _, s := range t.signers {
		if s == signer {
			return true
		}
	}
	return false
}

// Add appends the signer and reports whether this exact call made the
// count first meet the threshold. The crossing happens at most once for
// a given tracker.
func (t *QuorumTracker) Add(signer types.AccountID) (crossed bool, err error) {
	if t.Has(signer) {
		return false, types.ErrAlreadySigned
	}
	t.signers = append(t.signers, signer)
	crossed = len(t.signers) >= t.threshold && len(t.signers)-1 < t.threshold
	return crossed, nil
}

func (t *QuorumTracker) Count() int {
	return len(t.signers)
}

func (t *QuorumTracker) Reached() bool {
	return len(t.signers) >= t.threshold
}

// Signers returns the signer list in arrival order.
func (t *QuorumTracker) Signers() []types.AccountID {
	return t.signers
}
