package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jwalitptl/ehospital/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevokedToken = errors.New("session token revoked")
)

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string     `json:"un"`
	Role     model.Role `json:"rl"`
	Name     string     `json:"nm"`
}

// SessionManager issues and verifies signed session tokens.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked *RevocationList
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, revoked *RevocationList) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// TTL is how long an issued token stays valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given session.
func (m *SessionManager) Issue(s model.Session) (string, error) {
	now := m.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(s.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: s.Username,
		Role:     s.Role,
		Name:     s.Name,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify checks signature, expiry and revocation and returns the session.
func (m *SessionManager) Verify(token string) (*model.Session, *SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if m.revoked != nil && m.revoked.IsRevoked(claims.ID) {
		return nil, nil, ErrRevokedToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	if _, err := model.ParseRole(string(claims.Role)); err != nil || claims.Role == "" {
		return nil, nil, fmt.Errorf("%w: bad role", ErrInvalidToken)
	}

	return &model.Session{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     claims.Name,
	}, claims, nil
}

// Revoke invalidates a token until it would have expired anyway. Invalid
// tokens are ignored.
func (m *SessionManager) Revoke(token string) {
	if m.revoked == nil {
		return
	}
	_, claims, err := m.Verify(token)
	if err != nil {
		return
	}
	m.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
}
