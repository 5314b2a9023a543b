package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/types"
)

type createRequestPayload struct {
	AssetID            uint64                  `json:"asset_id" validate:"required"`
	DestinationChain   string                  `json:"destination_chain" validate:"required"`
	Recipient          string                  `json:"recipient" validate:"required"`
	RequiredSignatures int                     `json:"required_signatures" validate:"min=1"`
	TimeoutSeconds     *int64                  `json:"timeout_seconds,omitempty"`
	Metadata           *types.PropertyMetadata `json:"metadata,omitempty"`
	Requester          string                  `json:"requester" validate:"required"`
}

func (s *Server) createRequest(c echo.Context) error {
	var payload createRequestPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	params := bridge.CreateParams{
		AssetID:            payload.AssetID,
		DestinationChain:   types.ChainID(payload.DestinationChain),
		Recipient:          types.AccountID(payload.Recipient),
		RequiredSignatures: payload.RequiredSignatures,
		Metadata:           payload.Metadata,
		Requester:          types.AccountID(payload.Requester),
	}
	if payload.TimeoutSeconds != nil {
		timeout := time.Duration(*payload.TimeoutSeconds) * time.Second
		params.Timeout = &timeout
	}

	id, err := s.svc.CreateRequest(params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"request_id": id})
}

type signRequestPayload struct {
	Signer  string `json:"signer" validate:"required"`
	Approve *bool  `json:"approve" validate:"required"`
}

func (s *Server) signRequest(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	var payload signRequestPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if err := s.svc.SignRequest(id, types.AccountID(payload.Signer), *payload.Approve); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type executeRequestPayload struct {
	Executor string `json:"executor" validate:"required"`
}

func (s *Server) executeRequest(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	var payload executeRequestPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if err := s.svc.ExecuteRequest(id, types.AccountID(payload.Executor)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) monitorRequest(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	info, err := s.svc.MonitorStatus(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"request_id":           info.RequestID,
		"asset_id":             info.AssetID,
		"source_chain":         info.SourceChain,
		"destination_chain":    info.DestinationChain,
		"status":               info.Status.String(),
		"created_at":           info.CreatedAt,
		"expires_at":           info.ExpiresAt,
		"signatures_collected": info.SignaturesCollected,
		"signatures_required":  info.SignaturesRequired,
	})
}

func (s *Server) history(c echo.Context) error {
	history, err := s.svc.History(types.AccountID(c.Param("account")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": history, "count": len(history)})
}

func (s *Server) verifyTransaction(c echo.Context) error {
	verified, err := s.svc.VerifyTransaction(common.HexToHash(c.Param("hash")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"verified": verified})
}

func (s *Server) estimateGas(c echo.Context) error {
	assetID, err := parseID(c.QueryParam("asset_id"))
	if err != nil {
		return err
	}
	estimate, err := s.svc.EstimateBridgeGas(assetID, types.ChainID(c.QueryParam("destination_chain")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"gas": estimate})
}

type mintPayload struct {
	SourceChain     string                 `json:"source_chain" validate:"required"`
	OriginalAssetID uint64                 `json:"original_asset_id" validate:"required"`
	Recipient       string                 `json:"recipient" validate:"required"`
	Metadata        types.PropertyMetadata `json:"metadata"`
	TransactionHash string                 `json:"transaction_hash" validate:"required"`
}

func (s *Server) mintFromBridge(c echo.Context) error {
	var payload mintPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	assetID, err := s.svc.Custodian().MintFromBridge(
		types.ChainID(payload.SourceChain),
		payload.OriginalAssetID,
		types.AccountID(payload.Recipient),
		payload.Metadata,
		common.HexToHash(payload.TransactionHash),
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"asset_id": assetID})
}

type burnPayload struct {
	OriginalAssetID uint64 `json:"original_asset_id" validate:"required"`
	Chain           string `json:"chain" validate:"required"`
	Recipient       string `json:"recipient" validate:"required"`
}

func (s *Server) burnForReturn(c echo.Context) error {
	var payload burnPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	err := s.svc.Custodian().BurnForReturn(
		payload.OriginalAssetID,
		types.ChainID(payload.Chain),
		types.AccountID(payload.Recipient),
	)
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
