package output

import (
	"context"
	"time"

	"tradutor/internal/domain/entities"
)

// SessionRepository stores mounted widget sessions keyed by message ID.
// FindByMessageID returns domain.ErrSessionNotFound for unknown IDs.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByMessageID(ctx context.Context, messageID string) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error
	ListPending(ctx context.Context) ([]*entities.Session, error)
	Delete(ctx context.Context, messageID string) error
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
