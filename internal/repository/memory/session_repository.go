package memory

import (
	"context"
	"time"

	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = &SessionRepository{}

// NewSessionRepository builds an in-memory store. TTL eviction keeps
// abandoned sessions from accumulating for the lifetime of the process.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.Session), nil
	}
	return nil, contract.ErrSessionNotFound
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}

func (r *SessionRepository) Latest(_ context.Context) (*entity.Session, error) {
	var latest *entity.Session
	for _, item := range r.cache.Items() {
		session, ok := item.Object.(*entity.Session)
		if !ok {
			continue
		}
		if latest == nil || session.CreatedAt.After(latest.CreatedAt) {
			latest = session
		}
	}
	if latest == nil {
		return nil, contract.ErrSessionNotFound
	}
	return latest, nil
}
