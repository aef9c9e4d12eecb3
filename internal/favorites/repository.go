package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/forkful/forkful/internal/apperror"
)

// FavoriteRepository defines the data access contract for favorites.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type FavoriteRepository interface {
	// Add inserts the entry if the (user, recipe) pair is absent.
	// Adding an existing pair is a no-op, not an error.
	Add(ctx context.Context, fav *Favorite) error

	// ListByUser returns every favorite owned by the given user.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)

	// Remove deletes one entry. Returns apperror.NotFound when the pair
	// is not present.
	Remove(ctx context.Context, userID, recipeID string) error
}

// favoriteRepository implements FavoriteRepository with hand-written
// SQLite queries.
type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a favorites repository backed by the
// given DB pool.
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the favorite. ON CONFLICT DO NOTHING rides on the composite
// primary key: re-adding never duplicates and never errors, even when two
// requests for the same pair race.
func (r *favoriteRepository) Add(ctx context.Context, fav *Favorite) error {
	query := `INSERT INTO favorites (user_id, recipe_id, title, image, created_at)
	          VALUES (?, ?, ?, ?, ?)
	          ON CONFLICT (user_id, recipe_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		fav.UserID,
		fav.RecipeID,
		fav.Title,
		fav.Image,
		fav.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting favorite: %w", err)
	}

	return nil
}

// ListByUser returns the user's favorites in insertion order. Callers
// must not depend on the ordering; it is a presentation convenience.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	query := `SELECT user_id, recipe_id, title, image, created_at
	          FROM favorites WHERE user_id = ? ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var favs []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.UserID, &f.RecipeID, &f.Title, &f.Image, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning favorite row: %w", err)
		}
		favs = append(favs, f)
	}

	return favs, rows.Err()
}

// Remove deletes the (user, recipe) pair. RowsAffected distinguishes a
// real deletion from removing something that was never favorited.
func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID string) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("recipe is not in your favorites")
	}

	return nil
}
