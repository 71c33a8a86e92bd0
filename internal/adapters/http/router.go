package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dnh33/metanet-gallery-oss/config"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/http/api"
	internalhttp "github.com/dnh33/metanet-gallery-oss/internal/adapters/http/internal"
	res "github.com/dnh33/metanet-gallery-oss/pkg/http"
)

type Router struct {
	cfg       *config.Config
	apiRouter *api.Router
}

func NewRouter(cfg *config.Config, apiRouter *api.Router) *Router {
	return &Router{cfg: cfg, apiRouter: apiRouter}
}

func (r *Router) Setup(e *echo.Echo) {
	e.HideBanner = true
	e.HTTPErrorHandler = jsonErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     r.cfg.CORSOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}))

	internalhttp.Register(e)
	r.apiRouter.Register(e.Group("/api"))
}

// jsonErrorHandler keeps the error contract: whatever escapes a handler,
// including a recovered panic, becomes a JSON body with an "error" key.
// Internals are never echoed to the client.
func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	_ = res.Error(c, code, message)
}
