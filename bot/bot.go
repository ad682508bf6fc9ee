package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"

	"github.com/thegrimgg/grimbot/telemetry"
)

// replier is the part of the IRC client used to answer messages.
type replier interface {
	Reply(channel, parentMsgID, text string)
}

// Bot connects a Handler to Twitch chat.
type Bot struct {
	username string
	token    string
	channels []string
	handler  *Handler

	sender    replier
	connected atomic.Bool
}

// New returns a Bot that logs in as username and joins channels.
func New(username, token string, channels []string, h *Handler) *Bot {
	return &Bot{
		username: strings.ToLower(username),
		token:    token,
		channels: channels,
		handler:  h,
	}
}

// Connected reports whether the IRC connection is up.
func (b *Bot) Connected() bool { return b.connected.Load() }

// Run connects to chat and blocks until ctx is cancelled or the connection
// fails permanently. go-twitch-irc reconnects on transient errors itself.
func (b *Bot) Run(ctx context.Context) error {
	client := twitch.NewClient(b.username, b.token)
	b.sender = client

	client.OnConnect(func() {
		b.connected.Store(true)
		telemetry.SetChatConnected(true)
		slog.Info("twitch chat connected", slog.String("user", b.username), slog.Any("channels", b.channels), slog.String("component", "bot"))
	})
	client.OnReconnectMessage(func(twitch.ReconnectMessage) {
		b.connected.Store(false)
		telemetry.SetChatConnected(false)
		slog.Warn("twitch chat requested reconnect", slog.String("component", "bot"))
	})
	client.OnPrivateMessage(b.onMessage)

	if ctx.Err() != nil {
		return nil
	}

	// Handle context cancellation by closing the client
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		_ = client.Disconnect()
	}()

	client.Join(b.channels...)
	err := client.Connect()
	b.connected.Store(false)
	telemetry.SetChatConnected(false)
	if ctx.Err() != nil && errors.Is(err, twitch.ErrClientDisconnected) {
		<-done
		return nil
	}
	return err
}

func (b *Bot) onMessage(msg twitch.PrivateMessage) {
	if strings.EqualFold(msg.User.Name, b.username) {
		return
	}
	corr := msg.ID
	if corr == "" {
		corr = uuid.New().String()
	}
	ctx := telemetry.WithCorrelation(context.Background(), corr)

	reply, ok := b.handler.Handle(ctx, Message{
		ID:          msg.ID,
		Channel:     msg.Channel,
		User:        msg.User.Name,
		Text:        msg.Message,
		IsModerator: isModerator(msg.User),
	})
	if !ok {
		return
	}
	telemetry.LoggerWithCorr(ctx).Debug("replying", slog.String("channel", msg.Channel), slog.String("user", msg.User.Name), slog.String("component", "bot"))
	b.sender.Reply(msg.Channel, msg.ID, reply)
}

// isModerator treats the broadcaster as a moderator of their own channel.
func isModerator(u twitch.User) bool {
	return u.Badges["moderator"] > 0 || u.Badges["broadcaster"] > 0
}
