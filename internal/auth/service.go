package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/forkful/internal/apperror"
	"github.com/forkful/forkful/internal/config"
)

// bcryptCost is the fixed work factor for password hashing. bcrypt is a
// slow, salted, adaptive hash; a stolen database resists offline
// brute-force in a way a fast general-purpose hash would not.
const bcryptCost = 10

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, user *User, err error)
	Login(ctx context.Context, input LoginInput) (token string, user *User, err error)
	VerifyToken(token string) (*Identity, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

// authService implements AuthService with bcrypt hashing and signed
// stateless tokens.
type authService struct {
	repo            UserRepository
	secret          []byte
	tokenTTL        time.Duration
	enforceStrength bool
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{
		repo:            repo,
		secret:          []byte(cfg.SecretKey),
		tokenTTL:        cfg.TokenTTL,
		enforceStrength: cfg.EnforcePasswordStrength,
	}
}

// Register creates a new user account and issues a fresh token for it.
// The email must be unused; the password is hashed with bcrypt before
// anything touches the database.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return "", nil, apperror.NewBadRequest("email is required")
	}
	if input.Password == "" {
		return "", nil, apperror.NewBadRequest("password is required")
	}
	if s.enforceStrength {
		if msg := checkPasswordStrength(input.Password); msg != "" {
			return "", nil, apperror.NewValidation(msg)
		}
	}

	// Check for duplicates before doing expensive hashing. The unique
	// index still backstops a concurrent registration of the same email.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return "", nil, apperror.NewConflict("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.IsKind(err, "conflict") {
			return "", nil, err
		}
		return "", nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	token, err := generateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("signing token: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, user, nil
}

// Login authenticates a user by email and password and issues a fresh
// token. Unknown email and wrong password produce the identical error so
// the response never reveals which half was wrong.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if apperror.IsKind(err, "not_found") {
			return "", nil, apperror.NewUnauthorized("invalid email or password")
		}
		return "", nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", nil, apperror.NewUnauthorized("invalid email or password")
	}

	token, err := generateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("signing token: %w", err))
	}

	// Update the user's last login timestamp (fire-and-forget, non-critical).
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, user, nil
}

// VerifyToken validates a bearer token and recovers the identity it
// asserts. A missing token is unauthorized (401); a malformed, badly
// signed, or expired one is forbidden (403). Expiry is enforced here, at
// verification time.
func (s *authService) VerifyToken(token string) (*Identity, error) {
	if token == "" {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	identity, err := parseToken(token, s.secret)
	if err != nil {
		return nil, apperror.NewForbidden("invalid or expired token")
	}

	return identity, nil
}

// GetUser fetches the current user record for a verified identity.
func (s *authService) GetUser(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsKind(err, "not_found") {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}
	return user, nil
}

// normalizeEmail canonicalizes the login handle: case-insensitive,
// whitespace-trimmed.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkPasswordStrength applies the optional minimum-strength policy:
// at least 8 characters with a lowercase letter, an uppercase letter, a
// digit, and a symbol. Returns an error message or empty string.
func checkPasswordStrength(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	switch {
	case !lower:
		return "password must contain a lowercase letter"
	case !upper:
		return "password must contain an uppercase letter"
	case !digit:
		return "password must contain a digit"
	case !symbol:
		return "password must contain a symbol"
	}
	return ""
}
