package http

import "github.com/labstack/echo/v4"

// ErrorResponse is the uniform error envelope. Configured is only set
// (to false) on responses degraded by missing backend configuration so
// clients can tell an outage from a deliberately unconfigured deploy.
type ErrorResponse struct {
	Error      string `json:"error"`
	Configured *bool  `json:"configured,omitempty"`
}

func JSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: message})
}

func ErrorNotConfigured(c echo.Context, status int, message string) error {
	configured := false
	return c.JSON(status, ErrorResponse{Error: message, Configured: &configured})
}
