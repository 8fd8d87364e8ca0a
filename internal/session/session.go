// Package session carries the caller's identity and team space through a
// request, replacing ambient client-side state with an explicit value.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "teamspace-api"

// ErrInvalidToken is returned for tokens that fail signature or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Session identifies who is calling and which team space they act in. Any
// field may be empty.
type Session struct {
	UserID      string `json:"userID"`
	Username    string `json:"username"`
	TeamSpaceID string `json:"teamSpaceID"`
}

// LoggedIn reports whether a user is attached.
func (s Session) LoggedIn() bool { return s.UserID != "" }

// HasTeamSpace reports whether the user has joined a team space.
func (s Session) HasTeamSpace() bool { return s.TeamSpaceID != "" }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or the zero Session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}

// Claims are the JWT claims of a session token.
type Claims struct {
	Username    string `json:"username"`
	TeamSpaceID string `json:"team_space_id,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewManager creates a Manager signing with secret.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for s.
func (m *Manager) Issue(s Session) (string, error) {
	now := m.now()
	claims := &Claims{
		Username:    s.Username,
		TeamSpaceID: s.TeamSpaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   s.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Parse verifies token and returns its session.
func (m *Manager) Parse(token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.key, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:      claims.Subject,
		Username:    claims.Username,
		TeamSpaceID: claims.TeamSpaceID,
	}, nil
}
