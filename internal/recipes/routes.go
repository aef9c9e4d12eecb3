package recipes

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/middleware"
)

// RegisterRoutes sets up the recipe proxy routes. The endpoints are
// public but rate-limited per IP: every request burns upstream API
// quota, so one client cannot drain it for everyone.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/recipes", middleware.RateLimit(60, time.Minute))

	g.GET("", h.Search)
	g.GET("/:id", h.GetByID)
}
