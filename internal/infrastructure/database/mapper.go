package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"tradutor/internal/domain/entities"
)

// sessionRow mirrors a widget_sessions row.
type sessionRow struct {
	MessageID      string
	ChannelID      string
	OwnerID        string
	Locale         string
	InputText      string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	State          string
	ErrorMessage   string
	Generation     int64
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func sessionToDomain(r sessionRow) entities.Session {
	state := entities.State(r.State)
	if !state.Valid() {
		state = entities.StateIdle
	}
	return entities.Session{
		MessageID:      r.MessageID,
		ChannelID:      r.ChannelID,
		OwnerID:        r.OwnerID,
		Locale:         r.Locale,
		InputText:      r.InputText,
		TranslatedText: r.TranslatedText,
		SourceLang:     r.SourceLang,
		TargetLang:     r.TargetLang,
		State:          state,
		ErrorMessage:   r.ErrorMessage,
		Generation:     uint64(r.Generation),
		CreatedAt:      pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt:      pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

func sessionToRow(s *entities.Session) sessionRow {
	return sessionRow{
		MessageID:      s.MessageID,
		ChannelID:      s.ChannelID,
		OwnerID:        s.OwnerID,
		Locale:         s.Locale,
		InputText:      s.InputText,
		TranslatedText: s.TranslatedText,
		SourceLang:     s.SourceLang,
		TargetLang:     s.TargetLang,
		State:          string(s.State),
		ErrorMessage:   s.ErrorMessage,
		Generation:     int64(s.Generation),
		CreatedAt:      timeToPgtypeTimestamptz(s.CreatedAt),
		UpdatedAt:      timeToPgtypeTimestamptz(s.UpdatedAt),
	}
}
