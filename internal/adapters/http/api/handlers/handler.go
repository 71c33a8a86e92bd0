package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/config"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/usecase"
	res "github.com/dnh33/metanet-gallery-oss/pkg/http"
	pkglog "github.com/dnh33/metanet-gallery-oss/pkg/log"
)

// Handler serves the profile and avatar endpoints.
type Handler struct {
	cfg     *config.Config
	logger  pkglog.Logger
	service usecase.Service
}

func New(cfg *config.Config, logger pkglog.Logger, service usecase.Service) *Handler {
	return &Handler{cfg: cfg, logger: logger, service: service}
}

// sessionTokens pulls the access/refresh pair from the prefixed cookies.
// Missing cookies come back as empty strings.
func (h *Handler) sessionTokens(c echo.Context) (accessToken, refreshToken string) {
	if ck, err := c.Cookie(h.cfg.AccessTokenCookie()); err == nil {
		accessToken = ck.Value
	}
	if ck, err := c.Cookie(h.cfg.RefreshTokenCookie()); err == nil {
		refreshToken = ck.Value
	}
	return accessToken, refreshToken
}

// authenticate resolves the session or writes the 401 response. The
// second return value reports whether the request may proceed.
func (h *Handler) authenticate(c echo.Context) (*usecase.Identity, bool) {
	accessToken, refreshToken := h.sessionTokens(c)
	if accessToken == "" || refreshToken == "" {
		_ = res.Error(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	id, err := h.service.ResolveUser(c.Request().Context(), accessToken, refreshToken)
	if err != nil {
		_ = res.Error(c, http.StatusUnauthorized, "Invalid session")
		return nil, false
	}
	return id, true
}

// fail maps service errors onto the HTTP contract. Backend errors keep
// their message; anything unrecognized stays generic.
func fail(c echo.Context, err error) error {
	var ve *usecase.ValidationError
	var apiErr *supabase.APIError
	switch {
	case errors.As(err, &ve):
		return res.Error(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, usecase.ErrNotOwner):
		return res.Error(c, http.StatusForbidden, "Unauthorized to delete this avatar")
	case errors.Is(err, usecase.ErrNotConfigured):
		return res.ErrorNotConfigured(c, http.StatusServiceUnavailable, "Service not configured")
	case errors.Is(err, usecase.ErrUnauthenticated):
		return res.Error(c, http.StatusUnauthorized, "Invalid session")
	case errors.As(err, &apiErr):
		return res.Error(c, http.StatusInternalServerError, apiErr.Message)
	default:
		return res.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
