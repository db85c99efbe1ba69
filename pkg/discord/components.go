package discord

import (
	"github.com/bwmarrin/discordgo"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

// Custom IDs of the widget controls. Component interactions carry the widget
// message, so the IDs need no session key.
const (
	CustomIDSourceSelect = "tr_source"
	CustomIDTargetSelect = "tr_target"
	CustomIDSwap         = "tr_swap"
	CustomIDEdit         = "tr_edit"
	CustomIDClose        = "tr_close"
	CustomIDInputModal   = "tr_input_modal_" // + message ID
	CustomIDInputText    = "tr_input"
)

// BuildWidgetComponents renders the two language selectors and the
// swap/edit/close buttons.
func BuildWidgetComponents(t output.T, s *entities.Session) []discordgo.MessageComponent {
	locale := s.Locale
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    CustomIDSourceSelect,
				Placeholder: t.T(locale, "widget_source_select", nil),
				Options:     languageOptions(t, locale, s.SourceLang),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    CustomIDTargetSelect,
				Placeholder: t.T(locale, "widget_target_select", nil),
				Options:     languageOptions(t, locale, s.TargetLang),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "⇄ " + t.T(locale, "widget_swap_button", nil), Style: discordgo.SecondaryButton, CustomID: CustomIDSwap},
			discordgo.Button{Label: "✏️ " + t.T(locale, "widget_edit_button", nil), Style: discordgo.PrimaryButton, CustomID: CustomIDEdit},
			discordgo.Button{Label: t.T(locale, "widget_close_button", nil), Style: discordgo.DangerButton, CustomID: CustomIDClose},
		}},
	}
}

func languageOptions(t output.T, locale, selected string) []discordgo.SelectMenuOption {
	langs := entities.Languages()
	options := make([]discordgo.SelectMenuOption, 0, len(langs))
	for _, l := range langs {
		options = append(options, discordgo.SelectMenuOption{
			Label:   t.T(locale, l.MessageID(), nil),
			Value:   l.Code,
			Default: l.Code == selected,
		})
	}
	return options
}
