// Package favorites maintains each user's set of saved recipes. Entries
// reference recipes by the upstream provider's identifier and carry a
// small denormalized snapshot (title, image) captured at save time, so
// the favorites page renders without calling the provider.
package favorites

import (
	"encoding/json"
	"strings"
	"time"
)

// Favorite is one (user, recipe) pairing. The pair is the primary key in
// the store, so a user can hold at most one entry per recipe.
type Favorite struct {
	UserID    string    `json:"-"`
	RecipeID  string    `json:"recipeId"`
	Title     string    `json:"title,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeID is a recipe identifier as received on the wire. The upstream
// provider uses numeric ids but clients send them as either JSON numbers
// or strings; both normalize to the same canonical string so set
// membership never depends on the caller's JSON encoder.
type RecipeID string

// UnmarshalJSON accepts both `"42"` and `42`.
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = RecipeID(strings.TrimSpace(str))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*id = RecipeID(num.String())
	return nil
}

// String returns the canonical form used for storage and comparisons.
func (id RecipeID) String() string {
	return string(id)
}

// --- Request DTOs ---

// AddRequest is the JSON body of POST /favorites.
type AddRequest struct {
	RecipeID RecipeID `json:"recipeId"`
	Title    string   `json:"title"`
	Image    string   `json:"image"`
}

// AddInput is the validated input passed from handler to service.
type AddInput struct {
	RecipeID string
	Title    string
	Image    string
}
