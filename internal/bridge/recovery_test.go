package bridge_test

import (
	"testing"
	"time"

	"github.com/propchain/bridge/pkg/types"
	"github.com/stretchr/testify/require"
)

// failedRequest drives a request to Failed via an operator veto.
func failedRequest(t *testing.T, f *fixture) (uint64, uint64) {
	t.Helper()
	assetID := f.registerVerified(t, alice)
	id := f.createRequest(t, assetID, alice)
	require.NoError(t, f.svc.SignRequest(id, op1, false))
	return id, assetID
}

// expiredLockedRequest drives a request to Expired with the asset still
// in custody.
func expiredLockedRequest(t *testing.T, f *fixture) (uint64, uint64) {
	t.Helper()
	assetID := f.registerVerified(t, alice)
	id := f.createRequest(t, assetID, alice)
	require.NoError(t, f.svc.SignRequest(id, op1, true))
	require.NoError(t, f.svc.SignRequest(id, op2, true))
	f.now = f.now.Add(25 * time.Hour)
	require.ErrorIs(t, f.svc.ExecuteRequest(id, op1), types.ErrRequestExpired)
	return id, assetID
}

func TestRecoverRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	id, _ := failedRequest(t, f)

	require.ErrorIs(t, f.svc.Recover(id, types.RecoveryRetryBridge, op1), types.ErrUnauthorized)
}

func TestRecoverRejectsActiveRequests(t *testing.T) {
	f := newFixture(t)
	assetID := f.registerVerified(t, alice)
	id := f.createRequest(t, assetID, alice)

	require.ErrorIs(t, f.svc.Recover(id, types.RecoveryRetryBridge, admin), types.ErrInvalidRequest)
}

func TestRecoverUnknownRequest(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.svc.Recover(404, types.RecoveryRetryBridge, admin), types.ErrInvalidRequest)
}

func TestRecoverUnlockToken(t *testing.T) {
	f := newFixture(t)
	id, assetID := expiredLockedRequest(t, f)

	require.NoError(t, f.svc.Recover(id, types.RecoveryUnlockToken, admin))

	owner, err := f.ledger.OwnerOf(assetID)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
	require.Equal(t, uint64(1), f.ledger.BalanceOf(alice, assetID))

	// Unlock does not resurrect the request.
	info, err := f.svc.MonitorStatus(id)
	require.NoError(t, err)
	require.Equal(t, types.StatusExpired, info.Status)
	require.Contains(t, f.sink.events(), types.EventBridgeRequestRecovered)
}

func TestRecoverUnlockTokenWithoutCustodyIsANoOp(t *testing.T) {
	f := newFixture(t)
	id, assetID := failedRequest(t, f)

	require.NoError(t, f.svc.Recover(id, types.RecoveryUnlockToken, admin))

	owner, err := f.ledger.OwnerOf(assetID)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
}

func TestRecoverRefundGas(t *testing.T) {
	f := newFixture(t)
	id, _ := failedRequest(t, f)

	require.NoError(t, f.svc.Recover(id, types.RecoveryRefundGas, admin))

	info, err := f.svc.MonitorStatus(id)
	require.NoError(t, err)
	require.Equal(t, types.StatusFailed, info.Status)
}

func TestRecoverRetryBridge(t *testing.T) {
	f := newFixture(t)
	id, _ := failedRequest(t, f)

	retryAt := f.now
	require.NoError(t, f.svc.Recover(id, types.RecoveryRetryBridge, admin))

	info, err := f.svc.MonitorStatus(id)
	require.NoError(t, err)
	require.Equal(t, types.StatusPending, info.Status)
	require.Zero(t, info.SignaturesCollected)
	require.NotNil(t, info.ExpiresAt)
	require.Equal(t, retryAt.Add(24*time.Hour), *info.ExpiresAt)

	// The retried request collects signatures from scratch, including
	// from the operator who vetoed the first attempt.
	require.NoError(t, f.svc.SignRequest(id, op1, true))
	require.NoError(t, f.svc.SignRequest(id, op2, true))
	require.NoError(t, f.svc.ExecuteRequest(id, op1))
}

func TestRecoverRetryRestartsExpiryWindow(t *testing.T) {
	f := newFixture(t)
	id, _ := expiredLockedRequest(t, f)

	// The original deadline is long gone; the retry window starts now.
	require.NoError(t, f.svc.Recover(id, types.RecoveryRetryBridge, admin))
	require.NoError(t, f.svc.SignRequest(id, op1, true))
}

func TestRecoverRetryRejectedWhileAssetHasActiveRequest(t *testing.T) {
	f := newFixture(t)
	assetID := f.registerVerified(t, alice)
	first := f.createRequest(t, assetID, alice)
	require.NoError(t, f.svc.SignRequest(first, op1, false))

	// The veto freed the asset; the owner starts over with a fresh
	// request.
	second := f.createRequest(t, assetID, alice)

	// Reviving the vetoed request would put two pending requests on the
	// same asset.
	require.ErrorIs(t, f.svc.Recover(first, types.RecoveryRetryBridge, admin), types.ErrDuplicateRequest)

	info, err := f.svc.MonitorStatus(first)
	require.NoError(t, err)
	require.Equal(t, types.StatusFailed, info.Status)

	id, active, err := f.store.ActiveRequestID(assetID)
	require.NoError(t, err)
	require.True(t, active)
	require.Equal(t, second, id)
}

func TestRecoverCancelBridge(t *testing.T) {
	f := newFixture(t)
	id, assetID := expiredLockedRequest(t, f)

	require.NoError(t, f.svc.Recover(id, types.RecoveryCancelBridge, admin))

	info, err := f.svc.MonitorStatus(id)
	require.NoError(t, err)
	require.Equal(t, types.StatusFailed, info.Status)

	// Cancel releases custody back to the sender.
	owner, err := f.ledger.OwnerOf(assetID)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
}

func TestRecoverUnknownAction(t *testing.T) {
	f := newFixture(t)
	id, _ := failedRequest(t, f)

	require.ErrorIs(t, f.svc.Recover(id, types.RecoveryAction(42), admin), types.ErrInvalidRequest)
}
