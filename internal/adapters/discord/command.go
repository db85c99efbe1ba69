package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"tradutor/internal/application"
	"tradutor/internal/domain/entities"
	pkgdiscord "tradutor/pkg/discord"
)

// HandleCommand posts a new widget in the channel and mounts its session.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.resolveLocale(i.Interaction)
	userID := interactionUserID(i.Interaction)

	respondEphemeral(s, i.Interaction, h.t.T(locale, "command_mounting", nil))

	draft := entities.NewSession(userID, i.ChannelID, "", locale,
		h.t.T(locale, application.MsgPlaceholder, nil), h.now())
	msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     pkgdiscord.BuildWidgetEmbeds(h.t, draft, h.now().Year()),
		Components: pkgdiscord.BuildWidgetComponents(h.t, draft),
	})
	if err != nil {
		h.logger.Error("❌ failed to post widget", "channel_id", i.ChannelID, "error", err)
		return
	}

	if _, err := h.widget.Mount(ctx, userID, i.ChannelID, msg.ID, locale); err != nil {
		h.logger.Error("❌ failed to mount widget", "message_id", msg.ID, "error", err)
		if err := s.ChannelMessageDelete(i.ChannelID, msg.ID); err != nil {
			h.logger.Error("❌ failed to delete orphan widget", "message_id", msg.ID, "error", err)
		}
		return
	}
	h.logger.Info("✅ widget mounted", "message_id", msg.ID, "channel_id", i.ChannelID, "owner_id", userID)
}
