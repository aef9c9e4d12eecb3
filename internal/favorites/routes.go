package favorites

import (
	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/auth"
)

// RegisterRoutes sets up the favorites routes. Every route requires a
// verified bearer token; the handler then scopes all work to the token's
// user id.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/favorites", auth.RequireAuth(authService))

	g.POST("", h.Add)
	g.GET("", h.List)
	g.DELETE("/:recipeId", h.Remove)
}
