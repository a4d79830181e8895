package service

import (
	"context"
	"strings"

	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/repository/contract"

	"github.com/google/uuid"
)

// resolveSession looks up an explicit id first and only then, when the
// legacy single-user fallback is enabled, degrades to the most recently
// created session of the flow. Missing sessions surface as
// contract.ErrSessionNotFound before any mutation happens.
func resolveSession(ctx context.Context, repo contract.SessionRepository, cfg config.AssistantConfig, sessionId, flow string) (*entity.Session, error) {
	if trimmed := strings.TrimSpace(sessionId); trimmed != "" {
		id, err := uuid.Parse(trimmed)
		if err == nil {
			session, err := repo.Get(ctx, id)
			if err == nil && session.Flow == flow {
				return session, nil
			}
		}
		if !cfg.SessionFallback {
			return nil, contract.ErrSessionNotFound
		}
	} else if !cfg.SessionFallback {
		return nil, contract.ErrSessionNotFound
	}

	session, err := repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if session.Flow != flow {
		return nil, contract.ErrSessionNotFound
	}
	return session, nil
}
