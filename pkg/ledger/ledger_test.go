package ledger_test

import (
	"testing"

	"github.com/propchain/bridge/pkg/ledger"
	"github.com/propchain/bridge/pkg/types"
	"github.com/stretchr/testify/require"
)

const (
	alice = types.AccountID("0xA11ce")
	bob   = types.AccountID("0xB0b")
)

func TestRegisterProperty(t *testing.T) {
	l := ledger.New()

	metadata := types.PropertyMetadata{Location: "12 Harbor St", Valuation: 500_000}
	assetID := l.RegisterProperty(alice, metadata)
	require.Equal(t, uint64(1), assetID)

	owner, err := l.OwnerOf(assetID)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
	require.Equal(t, uint64(1), l.BalanceOf(alice, assetID))
	require.Equal(t, uint64(1), l.TotalSupply())

	got, err := l.MetadataOf(assetID)
	require.NoError(t, err)
	require.Equal(t, metadata, got)

	// Registration does not imply compliance.
	require.False(t, l.IsVerified(assetID))
}

func TestVerifyCompliance(t *testing.T) {
	l := ledger.New()
	assetID := l.RegisterProperty(alice, types.PropertyMetadata{})

	require.NoError(t, l.VerifyCompliance(assetID, bob, "KYC"))
	require.True(t, l.IsVerified(assetID))

	require.ErrorIs(t, l.VerifyCompliance(404, bob, "KYC"), types.ErrAssetNotFound)
}

func TestTransferOwnership(t *testing.T) {
	l := ledger.New()
	assetID := l.RegisterProperty(alice, types.PropertyMetadata{})

	require.NoError(t, l.TransferOwnership(assetID, bob))
	owner, err := l.OwnerOf(assetID)
	require.NoError(t, err)
	require.Equal(t, bob, owner)

	require.ErrorIs(t, l.TransferOwnership(404, bob), types.ErrAssetNotFound)
}

func TestMintSeedsCompliance(t *testing.T) {
	l := ledger.New()

	assetID, err := l.Mint(bob, types.PropertyMetadata{Location: "minted"})
	require.NoError(t, err)
	require.True(t, l.IsVerified(assetID))
	require.Equal(t, uint64(1), l.BalanceOf(bob, assetID))
}

func TestBurn(t *testing.T) {
	l := ledger.New()
	assetID := l.RegisterProperty(alice, types.PropertyMetadata{})

	require.NoError(t, l.Burn(assetID))
	_, err := l.OwnerOf(assetID)
	require.ErrorIs(t, err, types.ErrAssetNotFound)
	require.Zero(t, l.TotalSupply())

	require.ErrorIs(t, l.Burn(assetID), types.ErrAssetNotFound)
}

func TestMintAfterBurnNeverReusesIDs(t *testing.T) {
	l := ledger.New()
	first := l.RegisterProperty(alice, types.PropertyMetadata{})
	require.NoError(t, l.Burn(first))

	second, err := l.Mint(bob, types.PropertyMetadata{})
	require.NoError(t, err)
	require.Greater(t, second, first)
}

func TestRegistry(t *testing.T) {
	r := ledger.NewRegistry(alice)

	require.True(t, r.IsOperator(alice))
	require.False(t, r.IsOperator(bob))

	r.AddOperator(bob)
	r.AddOperator(bob) // idempotent
	require.True(t, r.IsOperator(bob))
	require.Len(t, r.Operators(), 2)

	r.RemoveOperator(alice)
	require.False(t, r.IsOperator(alice))
	require.Len(t, r.Operators(), 1)
}
