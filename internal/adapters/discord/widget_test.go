package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradutor/internal/application"
	"tradutor/internal/domain"
	"tradutor/internal/infrastructure/i18n"
	"tradutor/internal/infrastructure/memory"
)

type providerFunc func(text, source, target string) (string, error)

func (f providerFunc) Translate(_ context.Context, text, source, target string) (string, error) {
	return f(text, source, target)
}

type apiCall struct {
	method string
	path   string
	body   []byte
}

// renderedWidget is the part of an interaction response or message edit the
// widget fills in.
type renderedWidget struct {
	Type int `json:"type"`
	Data struct {
		Content string                    `json:"content"`
		Flags   int                       `json:"flags"`
		Embeds  []*discordgo.MessageEmbed `json:"embeds"`
	} `json:"data"`
	Embeds []*discordgo.MessageEmbed `json:"embeds"`
}

// newFakeDiscord points discordgo's REST endpoints at a local server that
// records every call.
func newFakeDiscord(t *testing.T) (*discordgo.Session, <-chan apiCall) {
	t.Helper()
	calls := make(chan apiCall, 32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls <- apiCall{method: r.Method, path: r.URL.Path, body: body}
		if r.Method == http.MethodPatch {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	prevAPI, prevChannels := discordgo.EndpointAPI, discordgo.EndpointChannels
	discordgo.EndpointAPI = srv.URL + "/api/"
	discordgo.EndpointChannels = discordgo.EndpointAPI + "channels/"
	t.Cleanup(func() {
		srv.Close()
		discordgo.EndpointAPI, discordgo.EndpointChannels = prevAPI, prevChannels
	})

	s, err := discordgo.New("Bot test")
	require.NoError(t, err)
	return s, calls
}

func newHandlerWith(t *testing.T, fn providerFunc) (*Handler, *application.WidgetService) {
	t.Helper()
	tr := i18n.NewTranslator("pt-BR")
	svc := application.NewWidgetService(memory.NewSessionRepository(), fn, tr)
	_, err := svc.Mount(context.Background(), "owner", "chan", "msg", "pt-BR")
	require.NoError(t, err)
	return NewHandler(svc, tr, "pt-BR", time.Second), svc
}

func componentInteraction(userID, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i1",
		Token:     "tok",
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "chan",
		Locale:    discordgo.PortugueseBR,
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
		Message:   &discordgo.Message{ID: "msg", ChannelID: "chan"},
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

func nextCall(t *testing.T, calls <-chan apiCall) apiCall {
	t.Helper()
	select {
	case c := <-calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no Discord API call")
		return apiCall{}
	}
}

func decodeWidget(t *testing.T, c apiCall) renderedWidget {
	t.Helper()
	var w renderedWidget
	require.NoError(t, json.Unmarshal(c.body, &w), string(c.body))
	return w
}

func assertNoCall(t *testing.T, calls <-chan apiCall) {
	t.Helper()
	select {
	case c := <-calls:
		t.Fatalf("unexpected Discord API call %s %s", c.method, c.path)
	default:
	}
}

func TestSwapRendersLoadingThenPublishesTranslation(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(text, source, target string) (string, error) {
		if text == "Hello" && source == "en-us" && target == "pt-br" {
			return "Olá", nil
		}
		return "?", nil
	})
	ctx := context.Background()
	_, _, err := svc.SetInputText(ctx, "msg", "owner", "Hello")
	require.NoError(t, err)
	_, _, err = svc.SetSourceLanguage(ctx, "msg", "owner", "pt-br")
	require.NoError(t, err)
	_, _, err = svc.SetTargetLanguage(ctx, "msg", "owner", "en-us")
	require.NoError(t, err)

	h.HandleSwap(s, componentInteraction("owner", "tr_swap"))

	respond := nextCall(t, calls)
	assert.Equal(t, http.MethodPost, respond.method)
	assert.Equal(t, "/api/interactions/i1/tok/callback", respond.path)
	loading := decodeWidget(t, respond)
	assert.Equal(t, int(discordgo.InteractionResponseUpdateMessage), loading.Type)
	require.Len(t, loading.Data.Embeds, 1)
	assert.Equal(t, "⏳ Traduzindo...", loading.Data.Embeds[0].Fields[1].Value)

	edit := nextCall(t, calls)
	assert.Equal(t, http.MethodPatch, edit.method)
	assert.Equal(t, "/api/channels/chan/messages/msg", edit.path)
	done := decodeWidget(t, edit)
	require.Len(t, done.Embeds, 1)
	assert.Equal(t, "Tradução · Português", done.Embeds[0].Fields[1].Name)
	assert.Equal(t, "Olá", done.Embeds[0].Fields[1].Value)
}

func TestModalSubmitPublishesFailureBanner(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, _ := newHandlerWith(t, func(string, string, string) (string, error) {
		return "", domain.ErrTranslationFailed
	})

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "i1",
		Token:  "tok",
		Type:   discordgo.InteractionModalSubmit,
		Locale: discordgo.PortugueseBR,
		Member: &discordgo.Member{User: &discordgo.User{ID: "owner"}},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: "tr_input_modal_msg",
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "tr_input", Value: "Test"},
				}},
			},
		},
	}}
	h.HandleInputModalSubmit(s, i)

	loading := decodeWidget(t, nextCall(t, calls))
	assert.Equal(t, "Test", loading.Data.Embeds[0].Fields[0].Value)

	failed := decodeWidget(t, nextCall(t, calls))
	require.Len(t, failed.Embeds, 2)
	assert.Equal(t, "Falha ao traduzir. Tente novamente.", failed.Embeds[0].Fields[1].Value)
	assert.Equal(t, "⚠️ Falha ao traduzir. Por favor, tente novamente.", failed.Embeds[1].Description)
}

func TestEditByStrangerAnswersEphemeralError(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(string, string, string) (string, error) { return "x", nil })

	h.HandleSwap(s, componentInteraction("intruder", "tr_swap"))

	reply := decodeWidget(t, nextCall(t, calls))
	assert.Equal(t, int(discordgo.InteractionResponseChannelMessageWithSource), reply.Type)
	assert.Equal(t, "❌ Só quem abriu o tradutor pode usá-lo.", reply.Data.Content)
	assert.Equal(t, int(discordgo.MessageFlagsEphemeral), reply.Data.Flags)

	session, err := svc.Get(context.Background(), "msg")
	require.NoError(t, err)
	assert.Equal(t, "pt-br", session.SourceLang)
}

func TestResolveSkipsStaleAndUnmountedWidgets(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(text, _, _ string) (string, error) { return text, nil })
	ctx := context.Background()

	_, old, err := svc.SetInputText(ctx, "msg", "owner", "first")
	require.NoError(t, err)
	_, _, err = svc.SetInputText(ctx, "msg", "owner", "second")
	require.NoError(t, err)

	h.resolve(s, old)
	assertNoCall(t, calls)

	_, gone, err := svc.SetInputText(ctx, "msg", "owner", "third")
	require.NoError(t, err)
	require.NoError(t, svc.Forget(ctx, "msg"))

	h.resolve(s, gone)
	assertNoCall(t, calls)
}

func TestPublishSkipsSupersededGeneration(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(text, _, _ string) (string, error) { return text, nil })
	ctx := context.Background()

	_, req, err := svc.SetInputText(ctx, "msg", "owner", "first")
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, req)
	require.NoError(t, err)
	_, newer, err := svc.SetInputText(ctx, "msg", "owner", "second")
	require.NoError(t, err)

	h.publish(s, "msg", req.Generation)
	assertNoCall(t, calls)

	h.publish(s, "msg", newer.Generation)
	edit := nextCall(t, calls)
	assert.Equal(t, http.MethodPatch, edit.method)
	assert.Equal(t, "⏳ Traduzindo...", decodeWidget(t, edit).Embeds[0].Fields[1].Value)
}

func TestResumePendingPublishesResults(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(string, string, string) (string, error) { return "Olá", nil })

	// Left Pending, as after a restart.
	_, _, err := svc.SetInputText(context.Background(), "msg", "owner", "Hello")
	require.NoError(t, err)

	h.ResumePending(s)

	edit := nextCall(t, calls)
	assert.Equal(t, "/api/channels/chan/messages/msg", edit.path)
	assert.Equal(t, "Olá", decodeWidget(t, edit).Embeds[0].Fields[1].Value)
}

func TestCloseConfirmsAndDeletesMessage(t *testing.T) {
	s, calls := newFakeDiscord(t)
	h, svc := newHandlerWith(t, func(string, string, string) (string, error) { return "x", nil })

	h.HandleClose(s, componentInteraction("owner", "tr_close"))

	reply := decodeWidget(t, nextCall(t, calls))
	assert.Equal(t, "🗑️ Tradutor fechado.", reply.Data.Content)
	assert.Equal(t, int(discordgo.MessageFlagsEphemeral), reply.Data.Flags)

	del := nextCall(t, calls)
	assert.Equal(t, http.MethodDelete, del.method)
	assert.Equal(t, "/api/channels/chan/messages/msg", del.path)

	_, err := svc.Get(context.Background(), "msg")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMessageLocksSerializePerMessage(t *testing.T) {
	var locks messageLocks

	unlock := locks.lock("msg")
	otherUnlock := locks.lock("other")
	otherUnlock()

	acquired := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		u := locks.lock("msg")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second writer entered while the first held the lock")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	wg.Wait()
	assert.Equal(t, 0, locks.len())
}
