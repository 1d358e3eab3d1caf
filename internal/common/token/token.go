package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a session token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// Manager issues and parses signed JWTs for authenticated users.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager creates a manager with the provided secret, issuer and lifetime.
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT string for the user.
func (m *Manager) Generate(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   m.issuer,
		"sub":   userID,
		"admin": isAdmin,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and extracts its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	isAdmin, _ := mapClaims["admin"].(bool)
	return &Claims{UserID: sub, IsAdmin: isAdmin}, nil
}
