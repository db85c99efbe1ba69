package entities

import (
	"strings"

	"golang.org/x/text/language"
)

// Default language pair of a freshly mounted widget.
const (
	DefaultSourceLanguage = "pt-br"
	DefaultTargetLanguage = "en-us"
)

// Language is one entry of the fixed set of languages the widget offers.
type Language struct {
	Code  string
	Label string
}

// Label is the Portuguese display name; localized labels come from the
// language_<code> messages of the i18n bundle.
var languages = []Language{
	{Code: "en-us", Label: "Inglês"},
	{Code: "es", Label: "Espanhol"},
	{Code: "fr", Label: "Francês"},
	{Code: "de", Label: "Alemão"},
	{Code: "it", Label: "Italiano"},
	{Code: "pt-br", Label: "Português"},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a supported language by code (case-insensitive).
func LookupLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// MessageID is the i18n message holding the localized label.
func (l Language) MessageID() string {
	return "language_" + l.Code
}

// Tag returns the BCP 47 tag of the language (pt-br → pt-BR).
func (l Language) Tag() language.Tag {
	return language.Make(l.Code)
}
