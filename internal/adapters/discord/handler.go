package discord

import (
	"log/slog"
	"sync"
	"time"

	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
)

// Localizer renders UI messages and tells which user locales it covers.
type Localizer interface {
	output.T
	Supported(locale string) bool
}

// Handler handles Discord interactions using the widget use case.
type Handler struct {
	widget           input.WidgetUseCase
	t                Localizer
	defaultLocale    string
	translateTimeout time.Duration
	now              func() time.Time
	logger           *slog.Logger

	// rendering orders the writes to each widget message.
	rendering messageLocks
}

// NewHandler creates a Handler.
func NewHandler(
	widget input.WidgetUseCase,
	t Localizer,
	defaultLocale string,
	translateTimeout time.Duration,
) *Handler {
	return &Handler{
		widget:           widget,
		t:                t,
		defaultLocale:    defaultLocale,
		translateTimeout: translateTimeout,
		now:              time.Now,
		logger:           slog.With("component", "discord"),
	}
}

// messageLocks hands out one mutex per message ID, dropped once unused.
type messageLocks struct {
	mu    sync.Mutex
	locks map[string]*messageLock
}

type messageLock struct {
	sync.Mutex
	refs int
}

func (l *messageLocks) lock(messageID string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*messageLock)
	}
	ml, ok := l.locks[messageID]
	if !ok {
		ml = &messageLock{}
		l.locks[messageID] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.Lock()
	return func() {
		ml.Unlock()
		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, messageID)
		}
		l.mu.Unlock()
	}
}

func (l *messageLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
