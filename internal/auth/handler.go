package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/apperror"
)

// Handler handles HTTP requests for authentication (register, login, me).
// Handlers are thin: they bind the request, call the service, and write
// the JSON response. No business logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// tokenResponse is the success body for register and login: a fresh
// bearer token plus the redacted user (PasswordHash is never marshaled).
type tokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a new account (POST /register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	token, user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Email:       req.Email,
		DisplayName: req.Name,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

// Login authenticates an existing account (POST /login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	token, user, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile (GET /me).
func (h *Handler) Me(c echo.Context) error {
	identity := GetIdentity(c)
	if identity == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	user, err := h.service.GetUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
}
