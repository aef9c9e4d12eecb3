package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/apperror"
)

// Context keys for storing the verified identity in Echo context. Other
// packages use these keys (via the exported getter functions below) to
// access the authenticated user's information.
const (
	contextKeyIdentity = "auth_identity"
	contextKeyUserID   = "auth_user_id"
)

// RequireAuth returns middleware that authenticates requests via the
// Authorization header ("Bearer <token>"). A missing header yields 401;
// a malformed, badly signed, or expired token yields 403. On success the
// verified identity is stored in the request context.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperror.NewUnauthorized("authentication required")
			}

			raw := strings.TrimPrefix(authHeader, "Bearer ")
			if raw == authHeader {
				// No "Bearer " prefix found.
				return apperror.NewUnauthorized("invalid authorization format, use: Bearer <token>")
			}

			identity, err := service.VerifyToken(raw)
			if err != nil {
				return err
			}

			// Store identity data in context for downstream handlers.
			c.Set(contextKeyIdentity, identity)
			c.Set(contextKeyUserID, identity.UserID)

			return next(c)
		}
	}
}

// --- Exported getters for other packages ---

// GetIdentity retrieves the verified identity from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetIdentity(c echo.Context) *Identity {
	identity, ok := c.Get(contextKeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
