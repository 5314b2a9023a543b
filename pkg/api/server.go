package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// Server exposes the bridge over HTTP: the request lifecycle, the
// monitoring reads, the relayer entry points and the admin surface.
type Server struct {
	echo *echo.Echo
	svc  *bridge.Service
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewServer(svc *bridge.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Validator = &payloadValidator{validate: validator.New()}

	s := &Server{echo: e, svc: svc}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.echo.Group("/api/v1")

	v1.POST("/requests", s.createRequest)
	v1.POST("/requests/:id/signatures", s.signRequest)
	v1.POST("/requests/:id/execute", s.executeRequest)
	v1.GET("/requests/:id", s.monitorRequest)
	v1.GET("/accounts/:account/history", s.history)
	v1.GET("/transactions/:hash", s.verifyTransaction)
	v1.GET("/gas", s.estimateGas)

	v1.POST("/relayer/mint", s.mintFromBridge)
	v1.POST("/relayer/burn", s.burnForReturn)

	admin := v1.Group("/admin")
	admin.POST("/pause", s.setPause)
	admin.POST("/recover", s.recover)
	admin.POST("/operators", s.addOperator)
	admin.DELETE("/operators/:operator", s.removeOperator)
	admin.GET("/operators", s.listOperators)
}

// ServeHTTP lets the server be mounted as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	log.Info().Str("address", address).Msg("[ApiServer] [Start] listening")
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// httpError maps the protocol error taxonomy onto HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, types.ErrInvalidRequest),
		errors.Is(err, types.ErrAssetNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrAlreadySigned),
		errors.Is(err, types.ErrDuplicateRequest):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrRequestExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, types.ErrBridgePaused):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, types.ErrInvalidChain),
		errors.Is(err, types.ErrInsufficientSignatures),
		errors.Is(err, types.ErrComplianceFailed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
