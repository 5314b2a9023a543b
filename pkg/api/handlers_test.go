package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/api"
	"github.com/propchain/bridge/pkg/events"
	"github.com/propchain/bridge/pkg/ledger"
	"github.com/propchain/bridge/pkg/types"
	"github.com/stretchr/testify/require"
)

const (
	admin = "0xAd11"
	alice = "0xA11ce"
	bob   = "0xB0b"
	op1   = "0x0Ff1cer1"
	op2   = "0x0Ff1cer2"
)

type apiFixture struct {
	server *api.Server
	ledger *ledger.Ledger
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	l := ledger.New()
	svc := bridge.NewService(
		types.BridgeConfig{
			SupportedChains: []types.ChainID{"evm|1"},
			MinSignatures:   2,
			MaxSignatures:   5,
			GasBudget:       1_000_000,
		},
		"propchain|1",
		admin,
		bridge.NewMemoryStore(),
		l, l,
		ledger.NewRegistry(op1, op2),
		events.NewEventBus(),
	)
	return &apiFixture{server: api.NewServer(svc), ledger: l}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) registerVerified(t *testing.T) uint64 {
	t.Helper()
	assetID := f.ledger.RegisterProperty(alice, types.PropertyMetadata{
		Location:         "12 Harbor St",
		LegalDescription: "Lot 7, Block 3",
		Valuation:        500_000,
	})
	require.NoError(t, f.ledger.VerifyCompliance(assetID, admin, "KYC"))
	return assetID
}

func (f *apiFixture) createRequest(t *testing.T, assetID uint64) uint64 {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"asset_id":            assetID,
		"destination_chain":   "evm|1",
		"recipient":           bob,
		"required_signatures": 2,
		"requester":           alice,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		RequestID uint64 `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.RequestID
}

func (f *apiFixture) sign(t *testing.T, id uint64, signer string, approve bool) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/signatures", id), map[string]any{
		"signer":  signer,
		"approve": approve,
	})
}

func TestCreateRequestEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)

	id := f.createRequest(t, assetID)
	require.Equal(t, uint64(1), id)

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/requests/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Status              string `json:"status"`
		SignaturesRequired  int    `json:"signatures_required"`
		SignaturesCollected int    `json:"signatures_collected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "pending", status.Status)
	require.Equal(t, 2, status.SignaturesRequired)
	require.Zero(t, status.SignaturesCollected)
}

func TestCreateRequestEndpointRejectsMissingFields(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"asset_id": 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFullLifecycleOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)
	id := f.createRequest(t, assetID)

	require.Equal(t, http.StatusNoContent, f.sign(t, id, op1, true).Code)
	require.Equal(t, http.StatusNoContent, f.sign(t, id, op2, true).Code)

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/execute", id), map[string]any{
		"executor": op1,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/accounts/"+alice+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Equal(t, 1, history.Count)
}

func TestErrorTaxonomyMapping(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)
	id := f.createRequest(t, assetID)

	t.Run("non-operator signature is forbidden", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, f.sign(t, id, bob, true).Code)
	})

	t.Run("duplicate signer conflicts", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, f.sign(t, id, op1, true).Code)
		require.Equal(t, http.StatusConflict, f.sign(t, id, op1, true).Code)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, f.sign(t, 404, op1, true).Code)
	})

	t.Run("duplicate active request conflicts", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
			"asset_id":            assetID,
			"destination_chain":   "evm|1",
			"recipient":           bob,
			"required_signatures": 2,
			"requester":           alice,
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unsupported chain is unprocessable", func(t *testing.T) {
		other := f.registerVerified(t)
		rec := f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
			"asset_id":            other,
			"destination_chain":   "evm|999",
			"recipient":           bob,
			"required_signatures": 2,
			"requester":           alice,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestPauseEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)

	rec := f.do(t, http.MethodPost, "/api/v1/admin/pause", map[string]any{
		"admin":  admin,
		"paused": true,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"asset_id":            assetID,
		"destination_chain":   "evm|1",
		"recipient":           bob,
		"required_signatures": 2,
		"requester":           alice,
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Only the admin can flip the pause flag.
	rec = f.do(t, http.MethodPost, "/api/v1/admin/pause", map[string]any{
		"admin":  bob,
		"paused": false,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecoverEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)
	id := f.createRequest(t, assetID)
	require.Equal(t, http.StatusNoContent, f.sign(t, id, op1, false).Code)

	rec := f.do(t, http.MethodPost, "/api/v1/admin/recover", map[string]any{
		"admin":      admin,
		"request_id": id,
		"action":     "retry_bridge",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/v1/admin/recover", map[string]any{
		"admin":      admin,
		"request_id": id,
		"action":     "do_magic",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOperatorEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/admin/operators", map[string]any{
		"admin":    admin,
		"operator": "0x0Ff1cer3",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/admin/operators", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Operators []string `json:"operators"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Operators, 3)

	rec = f.do(t, http.MethodDelete, "/api/v1/admin/operators/0x0Ff1cer3?admin="+admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/admin/operators/"+op1, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGasEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	assetID := f.registerVerified(t)

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/gas?asset_id=%d&destination_chain=evm|1", assetID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Gas uint64 `json:"gas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.Gas)
}
