package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

// DBTX is the subset of pgxpool.Pool / pgx.Tx the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createSession = `INSERT INTO widget_sessions (
	message_id, channel_id, owner_id, locale, input_text, translated_text,
	source_lang, target_lang, state, error_message, generation, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	getSessionByMessageID = `SELECT
	message_id, channel_id, owner_id, locale, input_text, translated_text,
	source_lang, target_lang, state, error_message, generation, created_at, updated_at
FROM widget_sessions WHERE message_id = $1`

	listPendingSessions = `SELECT
	message_id, channel_id, owner_id, locale, input_text, translated_text,
	source_lang, target_lang, state, error_message, generation, created_at, updated_at
FROM widget_sessions WHERE state = 'pending' ORDER BY message_id`

	updateSession = `UPDATE widget_sessions SET
	input_text = $2, translated_text = $3, source_lang = $4, target_lang = $5,
	state = $6, error_message = $7, generation = $8, updated_at = $9
WHERE message_id = $1`

	deleteSession = `DELETE FROM widget_sessions WHERE message_id = $1`

	deleteSessionsUpdatedBefore = `DELETE FROM widget_sessions WHERE updated_at < $1`
)

var _ output.SessionRepository = (*SessionRepository)(nil)

// SessionRepository implements output.SessionRepository on PostgreSQL.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	row := sessionToRow(session)
	_, err := r.db.Exec(ctx, createSession,
		row.MessageID, row.ChannelID, row.OwnerID, row.Locale, row.InputText, row.TranslatedText,
		row.SourceLang, row.TargetLang, row.State, row.ErrorMessage, row.Generation, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByMessageID(ctx context.Context, messageID string) (*entities.Session, error) {
	row, err := scanSession(r.db.QueryRow(ctx, getSessionByMessageID, messageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session by message id: %w", err)
	}
	s := sessionToDomain(row)
	return &s, nil
}

func (r *SessionRepository) ListPending(ctx context.Context) ([]*entities.Session, error) {
	rows, err := r.db.Query(ctx, listPendingSessions)
	if err != nil {
		return nil, fmt.Errorf("list pending sessions: %w", err)
	}
	defer rows.Close()

	var out []*entities.Session
	for rows.Next() {
		row, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending session: %w", err)
		}
		s := sessionToDomain(row)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending sessions: %w", err)
	}
	return out, nil
}

func scanSession(row pgx.Row) (sessionRow, error) {
	var r sessionRow
	err := row.Scan(
		&r.MessageID, &r.ChannelID, &r.OwnerID, &r.Locale, &r.InputText, &r.TranslatedText,
		&r.SourceLang, &r.TargetLang, &r.State, &r.ErrorMessage, &r.Generation, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *SessionRepository) Update(ctx context.Context, session *entities.Session) error {
	row := sessionToRow(session)
	tag, err := r.db.Exec(ctx, updateSession,
		row.MessageID, row.InputText, row.TranslatedText, row.SourceLang, row.TargetLang,
		row.State, row.ErrorMessage, row.Generation, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, messageID string) error {
	tag, err := r.db.Exec(ctx, deleteSession, messageID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, deleteSessionsUpdatedBefore, timeToPgtypeTimestamptz(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
