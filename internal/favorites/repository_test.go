package favorites

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/apperror"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
)

// openTestDB opens an isolated on-disk SQLite database in a temp dir,
// applies the real migrations, and seeds the users the favorites rows
// reference (the schema enforces the foreign key).
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewSQLite(config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "forkful_test.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	migrations := filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
	if err := database.RunMigrations(db, migrations); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	for _, u := range []struct{ id, email string }{
		{"u1", "alice@example.com"},
		{"u2", "bob@example.com"},
	} {
		_, err := db.Exec(
			`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
			u.id, u.email, "x", time.Now().UTC(),
		)
		if err != nil {
			t.Fatalf("seeding user %s: %v", u.id, err)
		}
	}

	return db
}

func testFavorite(userID, recipeID, title string) *Favorite {
	return &Favorite{
		UserID:    userID,
		RecipeID:  recipeID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

func TestFavoriteRepository_AddAndList(t *testing.T) {
	repo := NewFavoriteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Add(ctx, testFavorite("u1", "42", "Carbonara")); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	favs, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("listing favorites: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favs))
	}
	if favs[0].RecipeID != "42" || favs[0].Title != "Carbonara" {
		t.Errorf("unexpected favorite: %+v", favs[0])
	}
}

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	repo := NewFavoriteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Add(ctx, testFavorite("u1", "42", "Carbonara")); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// Same pair again, different snapshot: no error, no duplicate, and
	// the original snapshot wins.
	if err := repo.Add(ctx, testFavorite("u1", "42", "Renamed")); err != nil {
		t.Fatalf("second add: %v", err)
	}

	favs, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("listing favorites: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected exactly 1 favorite after re-add, got %d", len(favs))
	}
	if favs[0].Title != "Carbonara" {
		t.Errorf("re-add must not overwrite the entry, got title %q", favs[0].Title)
	}
}

func TestFavoriteRepository_ListEmpty(t *testing.T) {
	repo := NewFavoriteRepository(openTestDB(t))

	favs, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("listing favorites: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("expected no favorites, got %d", len(favs))
	}
}

func TestFavoriteRepository_PerUserIsolation(t *testing.T) {
	repo := NewFavoriteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Add(ctx, testFavorite("u1", "42", "Carbonara")); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}
	if err := repo.Add(ctx, testFavorite("u2", "7", "Lasagna")); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	u2favs, err := repo.ListByUser(ctx, "u2")
	if err != nil {
		t.Fatalf("listing favorites: %v", err)
	}
	if len(u2favs) != 1 || u2favs[0].RecipeID != "7" {
		t.Errorf("u2 sees wrong favorites: %+v", u2favs)
	}

	// u2 cannot remove u1's entry.
	err = repo.Remove(ctx, "u2", "42")
	if !apperror.IsKind(err, "not_found") {
		t.Fatalf("expected not_found removing another user's favorite, got %v", err)
	}
	u1favs, _ := repo.ListByUser(ctx, "u1")
	if len(u1favs) != 1 {
		t.Errorf("u1's favorites were affected by u2's remove")
	}
}

func TestFavoriteRepository_RemoveTwice(t *testing.T) {
	repo := NewFavoriteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Add(ctx, testFavorite("u1", "42", "Carbonara")); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	if err := repo.Remove(ctx, "u1", "42"); err != nil {
		t.Fatalf("first remove: %v", err)
	}

	err := repo.Remove(ctx, "u1", "42")
	if !apperror.IsKind(err, "not_found") {
		t.Fatalf("expected not_found on second remove, got %v", err)
	}

	favs, _ := repo.ListByUser(ctx, "u1")
	if len(favs) != 0 {
		t.Errorf("expected empty set after remove, got %d entries", len(favs))
	}
}
