package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/propchain/bridge/pkg/types"
)

type pausePayload struct {
	Admin  string `json:"admin" validate:"required"`
	Paused *bool  `json:"paused" validate:"required"`
}

func (s *Server) setPause(c echo.Context) error {
	var payload pausePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if err := s.svc.SetEmergencyPause(types.AccountID(payload.Admin), *payload.Paused); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type recoverPayload struct {
	Admin     string `json:"admin" validate:"required"`
	RequestID uint64 `json:"request_id" validate:"required"`
	Action    string `json:"action" validate:"required"`
}

func (s *Server) recover(c echo.Context) error {
	var payload recoverPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	action, err := types.ParseRecoveryAction(payload.Action)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.svc.Recover(payload.RequestID, action, types.AccountID(payload.Admin)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type operatorPayload struct {
	Admin    string `json:"admin" validate:"required"`
	Operator string `json:"operator" validate:"required"`
}

func (s *Server) addOperator(c echo.Context) error {
	var payload operatorPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if err := s.svc.AddOperator(types.AccountID(payload.Admin), types.AccountID(payload.Operator)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) removeOperator(c echo.Context) error {
	admin := c.QueryParam("admin")
	if admin == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "admin query parameter required")
	}
	err := s.svc.RemoveOperator(types.AccountID(admin), types.AccountID(c.Param("operator")))
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listOperators(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"operators": s.svc.Operators()})
}
