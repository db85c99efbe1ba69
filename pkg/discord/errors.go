package discord

import (
	"tradutor/internal/domain"
	"tradutor/internal/ports/output"
)

// DomainErrorMessage maps a domain error to a localized user-facing message.
// Unknown errors get the generic message.
func DomainErrorMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	switch code := domain.Code(err); code {
	case "session_not_found", "not_owner", "unsupported_language", "input_too_long":
		return t.T(locale, "error_"+code, nil)
	default:
		return t.T(locale, "error_generic", nil)
	}
}
