package input

import (
	"context"
	"time"

	"tradutor/internal/domain/entities"
)

// WidgetUseCase is the Translator Widget. Mutations return the updated
// session and, when the edit left the session Pending, the request to hand
// to Resolve.
type WidgetUseCase interface {
	Mount(ctx context.Context, ownerID, channelID, messageID, locale string) (*entities.Session, error)
	Get(ctx context.Context, messageID string) (*entities.Session, error)
	SetInputText(ctx context.Context, messageID, userID, text string) (*entities.Session, *entities.TranslationRequest, error)
	SetSourceLanguage(ctx context.Context, messageID, userID, code string) (*entities.Session, *entities.TranslationRequest, error)
	SetTargetLanguage(ctx context.Context, messageID, userID, code string) (*entities.Session, *entities.TranslationRequest, error)
	SwapLanguages(ctx context.Context, messageID, userID string) (*entities.Session, *entities.TranslationRequest, error)
	Resolve(ctx context.Context, req *entities.TranslationRequest) (*entities.Session, error)
	ResumePending(ctx context.Context) ([]*entities.TranslationRequest, error)
	Unmount(ctx context.Context, messageID, userID string) error
	Forget(ctx context.Context, messageID string) error
	PurgeIdle(ctx context.Context, olderThan time.Time) (int, error)
}
