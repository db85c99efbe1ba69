package discord

import (
	"github.com/bwmarrin/discordgo"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

// Discord counts MaxLength in characters. Accented text can still exceed
// entities.MaxInputBytes, which SetInputText rejects.
const maxInputLength = entities.MaxInputBytes

// BuildInputModal renders the text input modal, pre-filled with the current
// input of the session.
func BuildInputModal(t output.T, s *entities.Session) *discordgo.InteractionResponseData {
	locale := s.Locale
	return &discordgo.InteractionResponseData{
		CustomID: CustomIDInputModal + s.MessageID,
		Title:    t.T(locale, "modal_title", nil),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    CustomIDInputText,
					Label:       t.T(locale, "modal_input_label", nil),
					Style:       discordgo.TextInputParagraph,
					Placeholder: t.T(locale, "widget_input_placeholder", nil),
					Value:       s.InputText,
					Required:    false,
					MaxLength:   maxInputLength,
				},
			}},
		},
	}
}

// ExtractTextInput returns the value of the text input customID, "" if the
// modal has no such input.
func ExtractTextInput(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
