package output

import "context"

// TranslationProvider is the external translation service. Every failure
// wraps domain.ErrTranslationFailed.
type TranslationProvider interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}
