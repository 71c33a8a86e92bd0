package api

import (
	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/internal/adapters/http/api/handlers"
)

type Router struct {
	handlers *handlers.Handler
}

func NewRouter(h *handlers.Handler) *Router {
	return &Router{handlers: h}
}

func (r *Router) Register(g *echo.Group) {
	avatar := g.Group("/avatar")
	avatar.POST("/upload", r.handlers.UploadAvatar)
	avatar.POST("/delete", r.handlers.DeleteAvatar)
	avatar.GET("/url", r.handlers.AvatarURL)

	g.POST("/profile", r.handlers.UpdateProfile)
}
