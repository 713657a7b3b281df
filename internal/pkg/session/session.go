package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session expired or invalid")
	ErrInvalidToken    = errors.New("invalid token")
)

const RoleAdmin = "admin"

// Session is the authenticated caller, resolved once per request.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Store persists live sessions. Get returns ErrSessionNotFound for unknown or expired ids.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser drops every session the user holds.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// Manager issues signed access tokens backed by a revocable session record.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Init starts a session for a freshly authenticated user and returns its access token.
func (m *Manager) Init(ctx context.Context, userID uuid.UUID, email, role string) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := jwt.MapClaims{
		"jti":     s.ID,
		"user_id": userID.String(),
		"role":    role,
		"iat":     now.Unix(),
		"exp":     s.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return token, s, nil
}

// Resolve validates the token signature and loads the live session it names.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}

	s, err := m.store.Get(ctx, jti)
	if err != nil {
		return nil, err
	}
	if m.now().After(s.ExpiresAt) {
		_ = m.store.Delete(ctx, jti)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Teardown revokes the session so its token stops resolving.
func (m *Manager) Teardown(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	return m.store.Delete(ctx, s.ID)
}

// RevokeUser ends every session of a user, forcing a fresh sign-in that
// picks up their current role. Used after role changes and account deletion.
func (m *Manager) RevokeUser(ctx context.Context, userID uuid.UUID) error {
	if err := m.store.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions for user %s: %w", userID, err)
	}
	return nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
