package domain

import "errors"

// codedError is a domain error carrying a stable code that adapters map to
// user-facing (localized) messages.
type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string { return e.msg }

func newError(code, msg string) error {
	return &codedError{code: code, msg: msg}
}

// Domain errors.
var (
	// ErrTranslationFailed is the single failure kind of a remote translation:
	// transport errors, non-2xx statuses and malformed payloads all wrap it.
	ErrTranslationFailed   = newError("translation_failed", "translation request failed")
	ErrSessionNotFound     = newError("session_not_found", "widget session not found")
	ErrNotOwner            = newError("not_owner", "only the widget owner can perform this action")
	ErrUnsupportedLanguage = newError("unsupported_language", "unsupported language code")
	ErrInputTooLong        = newError("input_too_long", "input text exceeds the translation query limit")
	// ErrStaleTranslation is returned when a translation result arrives for a
	// request that has since been superseded. It is never shown to users.
	ErrStaleTranslation = newError("stale_translation", "translation result superseded by a newer request")
)

// Code returns the stable code of the domain error wrapped by err, or "" if
// err does not wrap one.
func Code(err error) string {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ""
}
