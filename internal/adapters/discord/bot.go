package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"tradutor/internal/config"
	"tradutor/internal/ports/input"
	pkgdiscord "tradutor/pkg/discord"
)

const commandName = "traduzir"

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires the widget use case into the interaction handler.
func NewBot(cfg *config.Config, widget input.WidgetUseCase, t Localizer) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	// Message deletions unmount widgets.
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	handler := NewHandler(widget, t, cfg.DefaultLocale, cfg.TranslateTimeout)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessageDelete)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, pkgdiscord.CustomIDInputModal) {
			b.handler.HandleInputModalSubmit(s, i)
		}
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case pkgdiscord.CustomIDSourceSelect:
			b.handler.HandleSourceSelect(s, i)
		case pkgdiscord.CustomIDTargetSelect:
			b.handler.HandleTargetSelect(s, i)
		case pkgdiscord.CustomIDSwap:
			b.handler.HandleSwap(s, i)
		case pkgdiscord.CustomIDEdit:
			b.handler.HandleEdit(s, i)
		case pkgdiscord.CustomIDClose:
			b.handler.HandleClose(s, i)
		}
	}
}

func (b *Bot) handleMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	if m.Message == nil {
		return
	}
	b.handler.HandleMessageDelete(m.ID)
}

func (b *Bot) command() *discordgo.ApplicationCommand {
	t := b.handler.t
	return &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: t.T(b.config.DefaultLocale, "command_description", nil),
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.PortugueseBR: t.T(string(discordgo.PortugueseBR), "command_description", nil),
			discordgo.EnglishUS:    t.T(string(discordgo.EnglishUS), "command_description", nil),
			discordgo.EnglishGB:    t.T(string(discordgo.EnglishGB), "command_description", nil),
		},
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, b.command()); err != nil {
		slog.Warn("⚠️ failed to register command", "command", commandName, "error", err)
	}

	b.handler.ResumePending(b.session)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go b.handler.RunScheduledTasks(ctx, b.config.SweepInterval, b.config.SessionTTL)

	slog.Info("🤖 Bot online! Press CTRL+C to quit.")
	<-ctx.Done()

	return nil
}
