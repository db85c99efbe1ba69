package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
)

// Message IDs of the fixed widget sentences.
const (
	MsgPlaceholder   = "widget_placeholder"
	MsgFailureText   = "widget_failure_text"
	MsgFailureBanner = "widget_failure_banner"
)

const tracerName = "tradutor/internal/application"

var _ input.WidgetUseCase = (*WidgetService)(nil)

// WidgetService runs the translator widget state machine on top of a
// session store and a translation provider.
type WidgetService struct {
	// mu serializes load-modify-save of sessions. Remote calls run outside it.
	mu         sync.Mutex
	sessions   output.SessionRepository
	translator output.TranslationProvider
	i18n       output.T
	now        func() time.Time
	logger     *slog.Logger
}

func NewWidgetService(
	sessions output.SessionRepository,
	translator output.TranslationProvider,
	i18n output.T,
) *WidgetService {
	return &WidgetService{
		sessions:   sessions,
		translator: translator,
		i18n:       i18n,
		now:        time.Now,
		logger:     slog.With("component", "widget"),
	}
}

func (s *WidgetService) Mount(ctx context.Context, ownerID, channelID, messageID, locale string) (*entities.Session, error) {
	session := entities.NewSession(ownerID, channelID, messageID, locale,
		s.i18n.T(locale, MsgPlaceholder, nil), s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("mount widget: %w", err)
	}
	s.logger.Debug("widget mounted", "message_id", messageID, "owner_id", ownerID)
	return session, nil
}

func (s *WidgetService) Get(ctx context.Context, messageID string) (*entities.Session, error) {
	return s.sessions.FindByMessageID(ctx, messageID)
}

func (s *WidgetService) SetInputText(ctx context.Context, messageID, userID, text string) (*entities.Session, *entities.TranslationRequest, error) {
	if len(text) > entities.MaxInputBytes {
		return nil, nil, fmt.Errorf("input of %d bytes: %w", len(text), domain.ErrInputTooLong)
	}
	return s.edit(ctx, messageID, userID, func(session *entities.Session) error {
		session.InputText = text
		return nil
	})
}

func (s *WidgetService) SetSourceLanguage(ctx context.Context, messageID, userID, code string) (*entities.Session, *entities.TranslationRequest, error) {
	lang, ok := entities.LookupLanguage(code)
	if !ok {
		return nil, nil, fmt.Errorf("source %q: %w", code, domain.ErrUnsupportedLanguage)
	}
	return s.edit(ctx, messageID, userID, func(session *entities.Session) error {
		session.SourceLang = lang.Code
		return nil
	})
}

func (s *WidgetService) SetTargetLanguage(ctx context.Context, messageID, userID, code string) (*entities.Session, *entities.TranslationRequest, error) {
	lang, ok := entities.LookupLanguage(code)
	if !ok {
		return nil, nil, fmt.Errorf("target %q: %w", code, domain.ErrUnsupportedLanguage)
	}
	return s.edit(ctx, messageID, userID, func(session *entities.Session) error {
		session.TargetLang = lang.Code
		return nil
	})
}

func (s *WidgetService) SwapLanguages(ctx context.Context, messageID, userID string) (*entities.Session, *entities.TranslationRequest, error) {
	return s.edit(ctx, messageID, userID, func(session *entities.Session) error {
		session.SwapLanguages()
		return nil
	})
}

// edit applies fn to the session and re-evaluates it: empty input forces
// Idle, anything else starts a new request.
func (s *WidgetService) edit(ctx context.Context, messageID, userID string, fn func(*entities.Session) error) (*entities.Session, *entities.TranslationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.FindByMessageID(ctx, messageID)
	if err != nil {
		return nil, nil, err
	}
	if session.OwnerID != userID {
		return nil, nil, domain.ErrNotOwner
	}
	if err := fn(session); err != nil {
		return nil, nil, err
	}

	var req *entities.TranslationRequest
	if session.HasInput() {
		req = session.Begin()
	} else {
		session.Reset(s.i18n.T(session.Locale, MsgPlaceholder, nil))
	}
	session.UpdatedAt = s.now()

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("update widget: %w", err)
	}
	return session, req, nil
}

// Resolve performs the remote translation for req and applies the outcome if
// req is still the session's current request. A superseded request yields
// domain.ErrStaleTranslation and leaves the session untouched.
func (s *WidgetService) Resolve(ctx context.Context, req *entities.TranslationRequest) (*entities.Session, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "widget.resolve", trace.WithAttributes(
		attribute.String("widget.message_id", req.MessageID),
		attribute.String("widget.langpair", req.SourceLang+"|"+req.TargetLang),
		attribute.Int64("widget.generation", int64(req.Generation)),
	))
	defer span.End()

	text, translateErr := s.translator.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
	if translateErr != nil {
		span.RecordError(translateErr)
		span.SetStatus(codes.Error, "translation failed")
		s.logger.Error("❌ translation failed",
			"message_id", req.MessageID,
			"langpair", req.SourceLang+"|"+req.TargetLang,
			"error", translateErr,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.FindByMessageID(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}
	if !session.IsCurrent(req) {
		s.logger.Debug("discarding superseded translation",
			"message_id", req.MessageID,
			"request_generation", req.Generation,
			"session_generation", session.Generation,
		)
		span.SetAttributes(attribute.Bool("widget.stale", true))
		return nil, domain.ErrStaleTranslation
	}

	if translateErr != nil {
		session.Fail(
			s.i18n.T(session.Locale, MsgFailureText, nil),
			s.i18n.T(session.Locale, MsgFailureBanner, nil),
		)
	} else {
		session.Succeed(text)
	}
	session.UpdatedAt = s.now()

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update widget: %w", err)
	}
	return session, nil
}

// ResumePending re-issues the request of every session left Pending, e.g. by
// a restart that lost the in-flight call. Sessions whose input is blank fall
// back to Idle.
func (s *WidgetService) ResumePending(ctx context.Context) ([]*entities.TranslationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.sessions.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending widgets: %w", err)
	}

	reqs := make([]*entities.TranslationRequest, 0, len(pending))
	for _, session := range pending {
		if session.HasInput() {
			reqs = append(reqs, session.Begin())
		} else {
			session.Reset(s.i18n.T(session.Locale, MsgPlaceholder, nil))
		}
		session.UpdatedAt = s.now()
		if err := s.sessions.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("resume widget %s: %w", session.MessageID, err)
		}
	}
	if len(pending) > 0 {
		s.logger.Info("🔁 resumed pending widgets", "count", len(pending), "requests", len(reqs))
	}
	return reqs, nil
}

// Unmount destroys the session on behalf of its owner.
func (s *WidgetService) Unmount(ctx context.Context, messageID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.FindByMessageID(ctx, messageID)
	if err != nil {
		return err
	}
	if session.OwnerID != userID {
		return domain.ErrNotOwner
	}
	return s.sessions.Delete(ctx, messageID)
}

// Forget destroys the session regardless of who asks, e.g. when the widget
// message was deleted. Unknown IDs are not an error.
func (s *WidgetService) Forget(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(ctx, messageID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// PurgeIdle destroys sessions untouched since olderThan and returns how many
// were removed.
func (s *WidgetService) PurgeIdle(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.DeleteUpdatedBefore(ctx, olderThan)
}
