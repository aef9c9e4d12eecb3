package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
)

// newTestApp wires a full application against an isolated on-disk SQLite
// store and a fake recipe provider, and returns it ready to serve.
func newTestApp(t *testing.T, providerURL string) *App {
	t.Helper()

	cfg := &config.Config{
		Env:            "development",
		Port:           0,
		LogLevel:       "error",
		AllowedOrigins: []string{"http://localhost:3000"},
		Database: config.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "forkful_test.db"),
			MaxOpenConns: 2,
			MaxIdleConns: 2,
		},
		Auth: config.AuthConfig{
			SecretKey: "integration-test-secret-key-0123456789",
			TokenTTL:  time.Hour,
		},
		Recipes: config.RecipesConfig{
			BaseURL: providerURL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	}

	db, err := database.NewSQLite(cfg.Database)
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

	a := New(cfg, db)
	a.RegisterRoutes()
	return a
}

// request performs one request against the app and decodes the JSON body.
func request(t *testing.T, a *App, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: non-JSON response %q", method, path, rec.Body.String())
		}
	}
	return rec.Code, decoded
}

// The full user journey: register, re-login, add a favorite with the
// second token, read it back with the first, remove it, observe the
// empty set. Both tokens stay valid throughout (no session limit).
func TestUserJourney(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:0")

	// Register -> token A.
	code, body := request(t, a, http.MethodPost, "/register", "",
		`{"email": "alice@example.com", "password": "P@ssw0rd1", "name": "Alice"}`)
	if code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%v)", code, body)
	}
	tokenA, _ := body["token"].(string)
	if tokenA == "" {
		t.Fatal("register returned no token")
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Errorf("unexpected user in register response: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("register response leaked the password hash")
	}

	// Login -> independent token B.
	code, body = request(t, a, http.MethodPost, "/login", "",
		`{"email": "alice@example.com", "password": "P@ssw0rd1"}`)
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", code, body)
	}
	tokenB, _ := body["token"].(string)
	if tokenB == "" {
		t.Fatal("login returned no token")
	}

	// Add a favorite using token B.
	code, body = request(t, a, http.MethodPost, "/favorites", tokenB,
		`{"recipeId": "42", "title": "Carbonara"}`)
	if code != http.StatusOK {
		t.Fatalf("add favorite: expected 200, got %d (%v)", code, body)
	}

	// List with token A: the set reflects the add regardless of which
	// live token reads it.
	code, body = request(t, a, http.MethodGet, "/favorites", tokenA, "")
	if code != http.StatusOK {
		t.Fatalf("list favorites: expected 200, got %d (%v)", code, body)
	}
	favs, _ := body["favorites"].([]any)
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %v", body["favorites"])
	}
	entry, _ := favs[0].(map[string]any)
	if entry["recipeId"] != "42" || entry["title"] != "Carbonara" {
		t.Errorf("unexpected favorite entry: %v", entry)
	}

	// Remove it, then the set is empty (JSON [], not null).
	code, body = request(t, a, http.MethodDelete, "/favorites/42", tokenA, "")
	if code != http.StatusOK {
		t.Fatalf("remove favorite: expected 200, got %d (%v)", code, body)
	}
	code, body = request(t, a, http.MethodGet, "/favorites", tokenA, "")
	if code != http.StatusOK {
		t.Fatalf("list favorites: expected 200, got %d (%v)", code, body)
	}
	favs, ok := body["favorites"].([]any)
	if !ok {
		t.Fatalf("expected empty favorites array, got %v", body["favorites"])
	}
	if len(favs) != 0 {
		t.Errorf("expected empty set after remove, got %v", favs)
	}

	// Removing again is a client error, not a crash.
	code, body = request(t, a, http.MethodDelete, "/favorites/42", tokenA, "")
	if code != http.StatusNotFound {
		t.Fatalf("second remove: expected 404, got %d (%v)", code, body)
	}
	if body["error"] != "not_found" {
		t.Errorf("expected not_found kind, got %v", body["error"])
	}
}

func TestAuthFailuresOnProtectedRoutes(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:0")

	// No token: 401 with the structured error shape.
	code, body := request(t, a, http.MethodGet, "/favorites", "", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if body["error"] != "unauthorized" || body["message"] == "" {
		t.Errorf("unexpected error body: %v", body)
	}

	// Garbage token: 403.
	code, body = request(t, a, http.MethodGet, "/favorites", "not-a-token", "")
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for garbage token, got %d", code)
	}
	if body["error"] != "forbidden" {
		t.Errorf("unexpected error kind: %v", body["error"])
	}
}

func TestRegisterConflictAndLoginAmbiguity(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:0")

	code, _ := request(t, a, http.MethodPost, "/register", "",
		`{"email": "bob@example.com", "password": "hunter22"}`)
	if code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", code)
	}

	// Same identity again: conflict, first account untouched.
	code, body := request(t, a, http.MethodPost, "/register", "",
		`{"email": "bob@example.com", "password": "different"}`)
	if code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d (%v)", code, body)
	}

	// Wrong password and unknown identity produce identical bodies.
	codeWrong, bodyWrong := request(t, a, http.MethodPost, "/login", "",
		`{"email": "bob@example.com", "password": "nope"}`)
	codeUnknown, bodyUnknown := request(t, a, http.MethodPost, "/login", "",
		`{"email": "nobody@example.com", "password": "nope"}`)
	if codeWrong != http.StatusUnauthorized || codeUnknown != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both login failures, got %d and %d", codeWrong, codeUnknown)
	}
	if bodyWrong["message"] != bodyUnknown["message"] {
		t.Errorf("login failures reveal which part was wrong: %v vs %v",
			bodyWrong["message"], bodyUnknown["message"])
	}
}

func TestRecipeProxyEndToEnd(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/recipes/complexSearch":
			if r.URL.Query().Get("apiKey") != "test-key" {
				t.Error("api key not injected")
			}
			w.Write([]byte(`{"results": [{"id": 42, "title": "Carbonara"}], "totalResults": 1}`))
		case r.URL.Path == "/recipes/42/information":
			w.Write([]byte(`{"id": 42, "title": "Carbonara", "servings": 4}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer provider.Close()

	a := newTestApp(t, provider.URL)

	// Search is public: no token needed.
	code, body := request(t, a, http.MethodGet, "/api/recipes?query=pasta", "", "")
	if code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d (%v)", code, body)
	}
	if body["totalResults"] != float64(1) {
		t.Errorf("unexpected search body: %v", body)
	}

	code, body = request(t, a, http.MethodGet, "/api/recipes/42", "", "")
	if code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d (%v)", code, body)
	}
	if body["title"] != "Carbonara" {
		t.Errorf("unexpected detail body: %v", body)
	}

	// Unknown upstream recipe surfaces as the caller's 404.
	code, body = request(t, a, http.MethodGet, "/api/recipes/999", "", "")
	if code != http.StatusNotFound {
		t.Fatalf("unknown recipe: expected 404, got %d (%v)", code, body)
	}
	if body["error"] != "not_found" {
		t.Errorf("expected not_found kind, got %v", body["error"])
	}
}

func TestProviderDownYieldsUpstreamError(t *testing.T) {
	// Point the proxy at a dead address.
	a := newTestApp(t, "http://127.0.0.1:1")

	code, body := request(t, a, http.MethodGet, "/api/recipes?query=pasta", "", "")
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d (%v)", code, body)
	}
	if body["error"] != "upstream_error" {
		t.Errorf("expected upstream_error kind, got %v", body["error"])
	}
	// The transport detail must not leak.
	if msg, _ := body["message"].(string); strings.Contains(msg, "127.0.0.1") {
		t.Errorf("upstream error leaked transport details: %q", msg)
	}
}

func TestRouterErrorsAreStructuredJSON(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:0")

	code, body := request(t, a, http.MethodGet, "/no/such/route", "", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["error"] != "not_found" || body["message"] == "" {
		t.Errorf("router 404 not in the error envelope: %v", body)
	}
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:0")

	code, body := request(t, a, http.MethodGet, "/health", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}
