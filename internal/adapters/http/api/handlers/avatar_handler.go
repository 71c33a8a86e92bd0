package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/internal/usecase"
	res "github.com/dnh33/metanet-gallery-oss/pkg/http"
)

type deleteAvatarRequest struct {
	AvatarPath string `json:"avatarPath"`
}

// UploadAvatar handles POST /api/avatar/upload (multipart field "avatar").
func (h *Handler) UploadAvatar(c echo.Context) error {
	if !h.cfg.IsConfigured() {
		return res.ErrorNotConfigured(c, http.StatusServiceUnavailable,
			"Avatar upload not available - storage not configured")
	}
	id, ok := h.authenticate(c)
	if !ok {
		return nil
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return res.Error(c, http.StatusBadRequest, "No file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid file")
	}
	defer f.Close()

	// one byte past the cap is enough to detect an oversized file
	// without buffering the rest
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxAvatarBytes+1))
	if err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid file")
	}

	out, err := h.service.UploadAvatar(c.Request().Context(), id,
		fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]interface{}{
		"success":  true,
		"path":     out.Path,
		"fullPath": out.FullPath,
	})
}

// DeleteAvatar handles POST /api/avatar/delete. With the backend
// unconfigured there is nothing to delete, which is exactly the state
// the caller wants, so that is a success.
func (h *Handler) DeleteAvatar(c echo.Context) error {
	if !h.cfg.IsConfigured() {
		return res.JSON(c, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Avatar delete skipped - storage not configured",
		})
	}
	id, ok := h.authenticate(c)
	if !ok {
		return nil
	}

	req := new(deleteAvatarRequest)
	if err := c.Bind(req); err != nil {
		return res.Error(c, http.StatusBadRequest, "Valid avatar path is required")
	}
	if err := h.service.DeleteAvatar(c.Request().Context(), id, req.AvatarPath); err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]interface{}{"success": true})
}

// AvatarURL handles GET /api/avatar/url?path=... No session is required:
// holding a valid path string is the capability here, and signed URLs
// are meant to be handed around.
func (h *Handler) AvatarURL(c echo.Context) error {
	out, err := h.service.ResolveAvatarURL(c.Request().Context(), c.QueryParam("path"))
	if err != nil {
		var ve *usecase.ValidationError
		if errors.As(err, &ve) || errors.Is(err, usecase.ErrNotConfigured) {
			return fail(c, err)
		}
		// the resolver's message already carries the diagnostic detail
		// (input path plus the signed-url failure); it leaks nothing
		return res.Error(c, http.StatusInternalServerError, err.Error())
	}
	return res.JSON(c, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     out.URL,
		"type":    out.Type,
	})
}
