package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/forkful/forkful/internal/apperror"
)

// FavoriteService defines the business logic contract for the favorites
// set. Every method is scoped to a verified user id; the service never
// reads or writes outside that user's rows, so one user cannot observe
// or affect another's favorites.
type FavoriteService interface {
	Add(ctx context.Context, userID string, input AddInput) ([]Favorite, error)
	List(ctx context.Context, userID string) ([]Favorite, error)
	Remove(ctx context.Context, userID, recipeID string) error
}

// favoriteService implements FavoriteService.
type favoriteService struct {
	repo FavoriteRepository
}

// NewFavoriteService creates a favorites service over the given repository.
func NewFavoriteService(repo FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo}
}

// Add saves a recipe to the user's set and returns the updated set.
// Adding an already-saved recipe is idempotent.
func (s *favoriteService) Add(ctx context.Context, userID string, input AddInput) ([]Favorite, error) {
	recipeID := strings.TrimSpace(input.RecipeID)
	if recipeID == "" {
		return nil, apperror.NewBadRequest("recipeId is required")
	}

	fav := &Favorite{
		UserID:    userID,
		RecipeID:  recipeID,
		Title:     strings.TrimSpace(input.Title),
		Image:     strings.TrimSpace(input.Image),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Add(ctx, fav); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("adding favorite: %w", err))
	}

	slog.Info("favorite added",
		slog.String("user_id", userID),
		slog.String("recipe_id", recipeID),
	)

	return s.List(ctx, userID)
}

// List returns the user's favorites. A user who has never saved anything
// gets an empty set, not an error.
func (s *favoriteService) List(ctx context.Context, userID string) ([]Favorite, error) {
	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing favorites: %w", err))
	}
	if favs == nil {
		favs = []Favorite{}
	}
	return favs, nil
}

// Remove deletes a recipe from the user's set. Removing a recipe that is
// not in the set yields not_found: a client error, never a crash, and
// the second of two identical removals always fails this way.
func (s *favoriteService) Remove(ctx context.Context, userID, recipeID string) error {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return apperror.NewBadRequest("recipeId is required")
	}

	if err := s.repo.Remove(ctx, userID, recipeID); err != nil {
		if apperror.IsKind(err, "not_found") {
			return err
		}
		return apperror.NewInternal(fmt.Errorf("removing favorite: %w", err))
	}

	slog.Info("favorite removed",
		slog.String("user_id", userID),
		slog.String("recipe_id", recipeID),
	)

	return nil
}
