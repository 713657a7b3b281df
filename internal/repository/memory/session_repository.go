package memory

import (
	"context"
	"sync"
	"time"

	"pharaohvault-be/internal/pkg/session"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. Used when Redis is unreachable.
type SessionRepository struct {
	cache *cache.Cache

	mu     sync.Mutex
	byUser map[uuid.UUID]map[string]struct{}
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache:  cache.New(24*time.Hour, 10*time.Minute),
		byUser: make(map[uuid.UUID]map[string]struct{}),
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return session.ErrSessionNotFound
	}
	r.cache.Set(s.ID, s, ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.byUser[s.UserID]
	if !ok {
		ids = make(map[string]struct{})
		r.byUser[s.UserID] = ids
	}
	ids[s.ID] = struct{}{}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	if x, found := r.cache.Get(id); found {
		return x.(*session.Session), nil
	}
	return nil, session.ErrSessionNotFound
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if x, found := r.cache.Get(id); found {
		r.mu.Lock()
		delete(r.byUser[x.(*session.Session).UserID], id)
		r.mu.Unlock()
	}
	r.cache.Delete(id)
	return nil
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	ids := r.byUser[userID]
	delete(r.byUser, userID)
	r.mu.Unlock()

	for id := range ids {
		r.cache.Delete(id)
	}
	return nil
}
