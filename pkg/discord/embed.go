package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

const (
	embedColor      = 0x5865F2
	errorEmbedColor = 0xED4245

	// Discord rejects embed field values longer than this.
	maxFieldValue = 1024
	emptyField    = "\u200b"
)

// BuildWidgetEmbeds renders the widget: the main embed with the input and
// output areas, plus a red banner embed when the session carries an error.
func BuildWidgetEmbeds(t output.T, s *entities.Session, year int) []*discordgo.MessageEmbed {
	locale := s.Locale

	input := s.InputText
	if !s.HasInput() {
		input = "*" + t.T(locale, "widget_input_placeholder", nil) + "*"
	}
	translated := s.TranslatedText
	if s.IsLoading() {
		translated = t.T(locale, "widget_loading", nil)
	}

	main := &discordgo.MessageEmbed{
		Title: t.T(locale, "widget_title", nil),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("%s · %s", t.T(locale, "widget_input_field", nil), LanguageLabel(t, locale, s.SourceLang)),
				Value: fieldValue(input),
			},
			{
				Name:  fmt.Sprintf("%s · %s", t.T(locale, "widget_output_field", nil), LanguageLabel(t, locale, s.TargetLang)),
				Value: fieldValue(translated),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: t.T(locale, "widget_footer", map[string]any{"Year": year})},
	}

	embeds := []*discordgo.MessageEmbed{main}
	if s.ErrorMessage != "" {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Description: "⚠️ " + s.ErrorMessage,
			Color:       errorEmbedColor,
		})
	}
	return embeds
}

// LanguageLabel returns the localized label of code, or the code itself when
// it is not a supported language.
func LanguageLabel(t output.T, locale, code string) string {
	lang, ok := entities.LookupLanguage(code)
	if !ok {
		return code
	}
	return t.T(locale, lang.MessageID(), nil)
}

func fieldValue(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyField
	}
	if utf8.RuneCountInString(s) <= maxFieldValue {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxFieldValue-1]) + "…"
}
