package discord

import (
	"github.com/bwmarrin/discordgo"
)

// interactionUserID returns the invoking user: Member in guilds, User in DMs.
func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// resolveLocale picks the user's client locale when the bundle covers it,
// else the configured default.
func (h *Handler) resolveLocale(i *discordgo.Interaction) string {
	if locale := string(i.Locale); locale != "" && h.t.Supported(locale) {
		return locale
	}
	return h.defaultLocale
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
