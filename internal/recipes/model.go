// Package recipes talks to the upstream recipe provider (Spoonacular)
// and exposes a thin proxy over its search and detail endpoints. The
// provider API key lives server-side only; browser clients go through
// this proxy and never see it.
package recipes

import "strings"

// Search result caps. The provider rejects page sizes above 100; the
// default matches the grid size the frontend renders.
const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// SearchParams are the caller-supplied knobs for a recipe search.
// Zero values mean "provider default" except Number, which is clamped.
type SearchParams struct {
	Query   string
	Offset  int
	Number  int
	Diet    string
	Cuisine string
}

// normalize trims free-text fields and clamps paging values into the
// range the provider accepts.
func (p SearchParams) normalize() SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	p.Diet = strings.TrimSpace(p.Diet)
	p.Cuisine = strings.TrimSpace(p.Cuisine)
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Number <= 0 {
		p.Number = defaultPageSize
	}
	if p.Number > maxPageSize {
		p.Number = maxPageSize
	}
	return p
}

// RecipeSummary is one search hit: just enough to render a result card.
type RecipeSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// SearchResult is the provider's search response shape, passed through
// to the frontend unchanged.
type SearchResult struct {
	Results      []RecipeSummary `json:"results"`
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	TotalResults int             `json:"totalResults"`
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit,omitempty"`
	Original string  `json:"original,omitempty"`
}

// Recipe is the detail view for a single recipe.
type Recipe struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Image          string       `json:"image,omitempty"`
	Servings       int          `json:"servings,omitempty"`
	ReadyInMinutes int          `json:"readyInMinutes,omitempty"`
	SourceURL      string       `json:"sourceUrl,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	DishTypes      []string     `json:"dishTypes,omitempty"`
	Ingredients    []Ingredient `json:"extendedIngredients,omitempty"`
	Instructions   string       `json:"instructions,omitempty"`
}
