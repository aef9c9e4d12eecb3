package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/middleware"
)

// RegisterRoutes sets up the auth routes on the given Echo instance.
// Register and login are public; /me requires a bearer token.
//
// The POST endpoints are rate-limited per IP to slow down brute-force
// and credential stuffing: 10 login attempts per minute, 5 registrations.
func RegisterRoutes(e *echo.Echo, h *Handler, service AuthService) {
	e.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	e.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.GET("/me", h.Me, RequireAuth(service))
}
