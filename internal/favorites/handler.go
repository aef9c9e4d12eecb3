package favorites

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/apperror"
	"github.com/forkful/forkful/internal/auth"
)

// Handler handles HTTP requests for the favorites collection. Handlers
// are thin: resolve the identity, call the service, write JSON.
type Handler struct {
	service FavoriteService
}

// NewHandler creates a new favorites handler with the given service.
func NewHandler(service FavoriteService) *Handler {
	return &Handler{service: service}
}

// Add saves a recipe to the caller's favorites (POST /favorites).
// The recipe id may arrive as a JSON string or number.
func (h *Handler) Add(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("authentication required")
	}

	var req AddRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	favs, err := h.service.Add(c.Request().Context(), userID, AddInput{
		RecipeID: req.RecipeID.String(),
		Title:    req.Title,
		Image:    req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":   "favorite added",
		"favorites": favs,
	})
}

// List returns the caller's favorites (GET /favorites).
func (h *Handler) List(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("authentication required")
	}

	favs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"favorites": favs,
	})
}

// Remove deletes one favorite (DELETE /favorites/:recipeId).
func (h *Handler) Remove(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("authentication required")
	}

	if err := h.service.Remove(c.Request().Context(), userID, c.Param("recipeId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "favorite removed",
	})
}
