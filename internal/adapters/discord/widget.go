package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	pkgdiscord "tradutor/pkg/discord"
)

type editFunc func(ctx context.Context, messageID, userID string) (*entities.Session, *entities.TranslationRequest, error)

func (h *Handler) HandleSourceSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.handleLanguageSelect(s, i, h.widget.SetSourceLanguage)
}

func (h *Handler) HandleTargetSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.handleLanguageSelect(s, i, h.widget.SetTargetLanguage)
}

func (h *Handler) handleLanguageSelect(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	set func(ctx context.Context, messageID, userID, code string) (*entities.Session, *entities.TranslationRequest, error),
) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 || i.Message == nil {
		return
	}
	code := data.Values[0]
	h.applyEdit(s, i, i.Message.ID, func(ctx context.Context, messageID, userID string) (*entities.Session, *entities.TranslationRequest, error) {
		return set(ctx, messageID, userID, code)
	})
}

func (h *Handler) HandleSwap(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	h.applyEdit(s, i, i.Message.ID, h.widget.SwapLanguages)
}

// HandleEdit opens the text input modal of the widget.
func (h *Handler) HandleEdit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	ctx := context.Background()
	session, err := h.widget.Get(ctx, i.Message.ID)
	if err == nil && session.OwnerID != interactionUserID(i.Interaction) {
		err = domain.ErrNotOwner
	}
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.t, h.resolveLocale(i.Interaction), err))
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: pkgdiscord.BuildInputModal(h.t, session),
	}); err != nil {
		h.logger.Error("❌ failed to open input modal", "message_id", session.MessageID, "error", err)
	}
}

// HandleInputModalSubmit applies the text typed in the input modal.
func (h *Handler) HandleInputModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	messageID, ok := strings.CutPrefix(data.CustomID, pkgdiscord.CustomIDInputModal)
	if !ok || messageID == "" {
		return
	}
	text := pkgdiscord.ExtractTextInput(data, pkgdiscord.CustomIDInputText)
	h.applyEdit(s, i, messageID, func(ctx context.Context, messageID, userID string) (*entities.Session, *entities.TranslationRequest, error) {
		return h.widget.SetInputText(ctx, messageID, userID, text)
	})
}

// HandleClose unmounts the widget and deletes its message.
func (h *Handler) HandleClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	ctx := context.Background()
	if err := h.widget.Unmount(ctx, i.Message.ID, interactionUserID(i.Interaction)); err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.t, h.resolveLocale(i.Interaction), err))
		return
	}

	respondEphemeral(s, i.Interaction, h.t.T(h.resolveLocale(i.Interaction), "widget_closed", nil))
	if err := s.ChannelMessageDelete(i.ChannelID, i.Message.ID); err != nil {
		h.logger.Error("❌ failed to delete widget message", "message_id", i.Message.ID, "error", err)
	}
	h.logger.Info("🗑️ widget closed", "message_id", i.Message.ID)
}

// HandleMessageDelete unmounts the widget whose message was deleted, if any.
func (h *Handler) HandleMessageDelete(messageID string) {
	if err := h.widget.Forget(context.Background(), messageID); err != nil {
		h.logger.Error("❌ failed to unmount deleted widget", "message_id", messageID, "error", err)
	}
}

// applyEdit runs edit, answers the interaction with the re-rendered widget
// and resolves the issued request in the background.
func (h *Handler) applyEdit(s *discordgo.Session, i *discordgo.InteractionCreate, messageID string, edit editFunc) {
	ctx := context.Background()
	session, req, err := edit(ctx, messageID, interactionUserID(i.Interaction))
	if err != nil {
		if domain.Code(err) == "" {
			h.logger.Error("❌ widget edit failed", "message_id", messageID, "error", err)
		}
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.t, h.resolveLocale(i.Interaction), err))
		return
	}

	embeds := pkgdiscord.BuildWidgetEmbeds(h.t, session, h.now().Year())
	components := pkgdiscord.BuildWidgetComponents(h.t, session)

	// A publish of an older result must not land after this render.
	unlock := h.rendering.lock(messageID)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	unlock()
	if err != nil {
		h.logger.Error("❌ failed to update widget", "message_id", messageID, "error", err)
	}

	if req != nil {
		go h.resolve(s, req)
	}
}

// ResumePending re-issues the requests that a restart left without an
// answer and publishes their results.
func (h *Handler) ResumePending(s *discordgo.Session) {
	reqs, err := h.widget.ResumePending(context.Background())
	if err != nil {
		h.logger.Error("❌ failed to resume pending widgets", "error", err)
		return
	}
	for _, req := range reqs {
		go h.resolve(s, req)
	}
}

// resolve waits for the translation of req and publishes it, unless a newer
// edit superseded it or the widget is gone.
func (h *Handler) resolve(s *discordgo.Session, req *entities.TranslationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), h.translateTimeout)
	defer cancel()

	session, err := h.widget.Resolve(ctx, req)
	if errors.Is(err, domain.ErrStaleTranslation) || errors.Is(err, domain.ErrSessionNotFound) {
		return
	}
	if err != nil {
		h.logger.Error("❌ failed to apply translation", "message_id", req.MessageID, "error", err)
		return
	}
	h.publish(s, session.MessageID, req.Generation)
}

// publish edits the widget message with the stored session, unless a newer
// edit has superseded generation in the meantime.
func (h *Handler) publish(s *discordgo.Session, messageID string, generation uint64) {
	unlock := h.rendering.lock(messageID)
	defer unlock()

	session, err := h.widget.Get(context.Background(), messageID)
	if err != nil || session.Generation != generation {
		return
	}

	embeds := pkgdiscord.BuildWidgetEmbeds(h.t, session, h.now().Year())
	components := pkgdiscord.BuildWidgetComponents(h.t, session)
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         session.MessageID,
		Channel:    session.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		h.logger.Error("❌ failed to publish translation", "message_id", session.MessageID, "error", err)
	}
}
