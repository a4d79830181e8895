package contract

import (
	"context"
	"errors"

	"nexter-ai-be/internal/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id resolves to nothing,
// including sessions evicted by TTL.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores conversation sessions. Backings must evict by TTL;
// sessions are volatile by design and survival across restarts is not part
// of the contract.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Latest returns the most recently created live session. It backs the
	// single-user fallback used when a turn arrives without an identifier.
	Latest(ctx context.Context) (*entity.Session, error)
}
