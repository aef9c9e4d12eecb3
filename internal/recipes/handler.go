package recipes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the recipe proxy. Both endpoints
// are public: search results and recipe details carry nothing
// user-specific.
type Handler struct {
	client Client
}

// NewHandler creates a new recipes handler over the given provider client.
func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// Search proxies a recipe search (GET /api/recipes).
func (h *Handler) Search(c echo.Context) error {
	params := SearchParams{
		Query:   c.QueryParam("query"),
		Offset:  intQueryParam(c, "offset"),
		Number:  intQueryParam(c, "number"),
		Diet:    c.QueryParam("diet"),
		Cuisine: c.QueryParam("cuisine"),
	}

	result, err := h.client.Search(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID proxies a recipe detail lookup (GET /api/recipes/:id).
func (h *Handler) GetByID(c echo.Context) error {
	recipe, err := h.client.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// intQueryParam parses an integer query parameter, treating absent or
// malformed values as zero so the client falls back to its defaults.
func intQueryParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
