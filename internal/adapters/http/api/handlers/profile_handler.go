package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/internal/usecase"
	res "github.com/dnh33/metanet-gallery-oss/pkg/http"
)

// UpdateProfile handles POST /api/profile.
func (h *Handler) UpdateProfile(c echo.Context) error {
	id, ok := h.authenticate(c)
	if !ok {
		return nil
	}

	in := usecase.ProfileUpdate{}
	if err := c.Bind(&in); err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid payload")
	}
	written, err := h.service.UpdateProfile(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    written,
	})
}
