package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forkful/forkful/internal/auth"
	"github.com/forkful/forkful/internal/favorites"
	"github.com/forkful/forkful/internal/recipes"
)

// RegisterRoutes builds each feature's repository/service/handler chain
// and registers its routes. This is the single place where the features
// are wired together.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container orchestration. Pings the
	// database: a server that cannot reach its store is not healthy.
	e.GET("/health", a.healthCheck)

	// Credential & session management: /register, /login, /me.
	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, a.Config.Auth)
	auth.RegisterRoutes(e, auth.NewHandler(authService), authService)

	// Per-user favorites, bearer-auth only: /favorites.
	favRepo := favorites.NewFavoriteRepository(a.DB)
	favService := favorites.NewFavoriteService(favRepo)
	favorites.RegisterRoutes(e, favorites.NewHandler(favService), authService)

	// Recipe provider proxy, public: /api/recipes.
	recipeClient := recipes.NewClient(a.Config.Recipes)
	recipes.RegisterRoutes(e, recipes.NewHandler(recipeClient))
}

// healthCheck reports liveness plus store connectivity.
func (a *App) healthCheck(c echo.Context) error {
	status := http.StatusOK
	dbStatus := "ok"
	if err := a.DB.PingContext(c.Request().Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "unreachable"
	}

	return c.JSON(status, map[string]string{
		"status":      dbStatus,
		"environment": a.Config.Env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
