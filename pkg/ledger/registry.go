package ledger

import (
	"sync"

	"github.com/propchain/bridge/pkg/types"
)

// Registry is the operator set consulted on every sign and execute.
// Mutation is admin-gated by the bridge service.
type Registry struct {
	mu        sync.RWMutex
	operators []types.AccountID
}

func NewRegistry(operators ...types.AccountID) *Registry {
	return &Registry{operators: operators}
}

func (r *Registry) IsOperator(account types.AccountID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, op := range r.operators {
		if op == account {
			return true
		}
	}
	return false
}

func (r *Registry) AddOperator(account types.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range r.operators {
		if op == account {
			return
		}
	}
	r.operators = append(r.operators, account)
}

func (r *Registry) RemoveOperator(account types.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.operators[:0]
	for _, op := range r.operators {
		if op != account {
			kept = append(kept, op)
		}
	}
	r.operators = kept
}

func (r *Registry) Operators() []types.AccountID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.AccountID(nil), r.operators...)
}
