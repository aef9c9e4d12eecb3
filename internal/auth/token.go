package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims is the signed token payload: the registered subject/expiry
// claims plus the denormalized email and display name so /me can answer
// without a database round trip if needed.
type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// generateToken mints an HS256-signed token bound to the given user,
// expiring ttl from now. A fresh token is minted on every registration
// and login; previously issued tokens are unaffected.
func generateToken(user *User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: user.Email,
		Name:  user.DisplayName,
	})

	return token.SignedString(secret)
}

// parseToken verifies the signature and expiry of a raw token string and
// recovers the identity it asserts. The signature is re-derived and
// compared -- never just decoded -- and the signing method is pinned to
// HMAC so an attacker cannot downgrade to "none" or swap in an RSA key.
func parseToken(raw string, secret []byte) (*Identity, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &Identity{
		UserID: c.Subject,
		Email:  c.Email,
		Name:   c.Name,
	}, nil
}
