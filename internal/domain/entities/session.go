package entities

import (
	"strings"
	"time"
)

// MaxInputBytes is the largest query MyMemory accepts, in UTF-8 bytes.
const MaxInputBytes = 500

// State is the translation lifecycle state of a widget session.
type State string

const (
	StateIdle    State = "idle"    // input empty, placeholder shown
	StatePending State = "pending" // request in flight
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StatePending, StateSuccess, StateFailed:
		return true
	}
	return false
}

// Session is the state bundle of one mounted widget. It lives from the
// moment the widget message is posted until it is closed or deleted.
type Session struct {
	MessageID      string
	ChannelID      string
	OwnerID        string
	Locale         string
	InputText      string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	State          State
	ErrorMessage   string // banner; empty = no banner
	Generation     uint64 // bumped on every re-evaluation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TranslationRequest is the one outbound translation a re-evaluation issued.
// It is current while its Generation matches the session's.
type TranslationRequest struct {
	MessageID  string
	Generation uint64
	Text       string
	SourceLang string
	TargetLang string
}

// NewSession returns a session in its mount defaults.
func NewSession(ownerID, channelID, messageID, locale, placeholder string, now time.Time) *Session {
	return &Session{
		MessageID:      messageID,
		ChannelID:      channelID,
		OwnerID:        ownerID,
		Locale:         locale,
		TranslatedText: placeholder,
		SourceLang:     DefaultSourceLanguage,
		TargetLang:     DefaultTargetLanguage,
		State:          StateIdle,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsLoading reports whether the loading indicator is shown.
func (s *Session) IsLoading() bool {
	return s.State == StatePending
}

// HasInput reports whether the input holds anything but whitespace.
func (s *Session) HasInput() bool {
	return strings.TrimSpace(s.InputText) != ""
}

// SwapLanguages exchanges source and target codes and nothing else.
func (s *Session) SwapLanguages() {
	s.SourceLang, s.TargetLang = s.TargetLang, s.SourceLang
}

// Reset moves the session to Idle showing placeholder. Any request still in
// flight becomes stale.
func (s *Session) Reset(placeholder string) {
	s.Generation++
	s.State = StateIdle
	s.TranslatedText = placeholder
	s.ErrorMessage = ""
}

// Begin moves the session to Pending and returns the request to issue. The
// previous translated text stays until the request completes.
func (s *Session) Begin() *TranslationRequest {
	s.Generation++
	s.State = StatePending
	s.ErrorMessage = ""
	return &TranslationRequest{
		MessageID:  s.MessageID,
		Generation: s.Generation,
		Text:       s.InputText,
		SourceLang: s.SourceLang,
		TargetLang: s.TargetLang,
	}
}

// IsCurrent reports whether req is the request the session is waiting for.
func (s *Session) IsCurrent(req *TranslationRequest) bool {
	return req != nil && s.State == StatePending && req.MessageID == s.MessageID && req.Generation == s.Generation
}

// Succeed applies a successful result of the current request.
func (s *Session) Succeed(text string) {
	s.State = StateSuccess
	s.TranslatedText = text
	s.ErrorMessage = ""
}

// Fail applies a failed result of the current request.
func (s *Session) Fail(failureText, banner string) {
	s.State = StateFailed
	s.TranslatedText = failureText
	s.ErrorMessage = banner
}
