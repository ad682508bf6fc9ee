package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thegrimgg/grimbot/characters"
	"github.com/thegrimgg/grimbot/lore"
	"github.com/thegrimgg/grimbot/telemetry"
)

const (
	turfWarReply  = "Turf War v1.2 Rules => https://shorturl.at/djScA"
	notFoundReply = "Character not found.  Check your spelling you goof!"
)

// Message is one inbound chat message, already stripped of platform details.
type Message struct {
	ID          string
	Channel     string
	User        string
	Text        string
	IsModerator bool
}

// Handler maps chat messages to replies.
type Handler struct {
	Resolver    *characters.Resolver
	Lore        *lore.Store
	Prefix      string
	JoinMessage string

	getters map[string]lore.Field
	setters map[string]lore.Field
}

// NewHandler returns a Handler answering lore commands for every field in
// lore.Fields().
func NewHandler(resolver *characters.Resolver, store *lore.Store, prefix, joinMessage string) *Handler {
	h := &Handler{
		Resolver:    resolver,
		Lore:        store,
		Prefix:      prefix,
		JoinMessage: joinMessage,
		getters:     map[string]lore.Field{},
		setters:     map[string]lore.Field{},
	}
	for _, f := range lore.Fields() {
		h.getters[string(f)] = f
		h.setters["set"+string(f)] = f
	}
	return h
}

// Handle returns the reply for m. handled is false when m is not a command
// this bot answers, in which case nothing should be sent.
func (h *Handler) Handle(ctx context.Context, m Message) (reply string, handled bool) {
	text := strings.TrimSpace(m.Text)
	if !strings.HasPrefix(text, h.Prefix) {
		return "", false
	}
	body := strings.TrimSpace(text[len(h.Prefix):])
	if body == "" {
		return "", false
	}
	name, arg, _ := strings.Cut(body, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	ctx, span := telemetry.StartSpan(ctx, "bot", "chat.command", telemetry.ChannelAttr(m.Channel), telemetry.CommandAttr(name))
	defer span.End()

	telemetry.TimeFunc(telemetry.CommandDuration, func() {
		reply, handled = h.dispatch(ctx, m, name, arg, body)
	})
	if handled {
		telemetry.SetSpanSuccess(span)
	}
	return reply, handled
}

func (h *Handler) dispatch(ctx context.Context, m Message, name, arg, body string) (string, bool) {
	switch name {
	case "join":
		telemetry.IncCommand(name, "ok")
		return h.JoinMessage, true
	case "turfwar":
		telemetry.IncCommand(name, "ok")
		return turfWarReply, true
	case "help":
		telemetry.IncCommand(name, "ok")
		return h.help(), true
	case "char":
		ch, ok := h.lookup(arg)
		if !ok {
			telemetry.IncCommand(name, "not_found")
			return notFoundReply, true
		}
		telemetry.IncCommand(name, "ok")
		return FormatCharacter(ch), true
	}
	if f, ok := h.getters[name]; ok {
		return h.getLore(ctx, m, f), true
	}
	if f, ok := h.setters[name]; ok {
		return h.setLore(ctx, m, f, arg), true
	}

	// Any other command is tried as a character name, so "!imp" and
	// "!fortune teller" both work. Misses stay silent.
	ch, ok := h.lookup(body)
	if !ok {
		return "", false
	}
	telemetry.IncCommand("alias", "ok")
	return FormatCharacter(ch), true
}

func (h *Handler) lookup(input string) (characters.Character, bool) {
	ch, ok := h.Resolver.Resolve(input)
	telemetry.IncLookup(ok)
	return ch, ok
}

func (h *Handler) getLore(ctx context.Context, m Message, f lore.Field) string {
	value, ok, err := h.Lore.Get(m.Channel, f)
	if err != nil {
		telemetry.IncCommand(string(f), "error")
		return h.storeErrorReply(ctx, m, f, err)
	}
	if !ok {
		value = fmt.Sprintf("No %s has been set for the channel %s", f.Noun(), m.Channel)
	}
	telemetry.IncCommand(string(f), "ok")
	return fmt.Sprintf("The %s Is: \"%s\"", f.Label(), value)
}

func (h *Handler) setLore(ctx context.Context, m Message, f lore.Field, value string) string {
	cmd := "set" + string(f)
	err := h.Lore.Set(m.Channel, f, value, m.IsModerator)
	switch {
	case err == nil:
		telemetry.IncCommand(cmd, "ok")
		telemetry.IncLoreUpdate(string(f), "ok")
		telemetry.LoggerWithCorr(ctx).Info("lore field set",
			slog.String("channel", m.Channel),
			slog.String("field", string(f)),
			slog.String("user", m.User),
			slog.String("component", "bot"))
		return fmt.Sprintf("The %s has been set.", f.Label())
	case errors.Is(err, lore.ErrPermissionDenied):
		telemetry.IncCommand(cmd, "denied")
		telemetry.IncLoreUpdate(string(f), "denied")
		return fmt.Sprintf("Only moderators can set the %s.", f.Label())
	case errors.Is(err, lore.ErrEmptyValue):
		telemetry.IncCommand(cmd, "usage")
		telemetry.IncLoreUpdate(string(f), "empty")
		return fmt.Sprintf("Usage: %s%s <%s>", h.Prefix, cmd, f.Noun())
	default:
		telemetry.IncCommand(cmd, "error")
		telemetry.IncLoreUpdate(string(f), "error")
		return h.storeErrorReply(ctx, m, f, err)
	}
}

func (h *Handler) storeErrorReply(ctx context.Context, m Message, f lore.Field, err error) string {
	telemetry.LoggerWithCorr(ctx).Error("lore store error",
		slog.String("channel", m.Channel),
		slog.String("field", string(f)),
		slog.Any("err", err),
		slog.String("component", "bot"))
	var uce *lore.UnknownChannelError
	if errors.As(err, &uce) {
		return "Lore commands are not configured for this channel."
	}
	return "Something went wrong, please try again."
}

func (h *Handler) help() string {
	names := []string{"char <name>", "<character>"}
	for _, f := range lore.Fields() {
		names = append(names, string(f), "set"+string(f))
	}
	names = append(names, "join", "turfwar")
	for i, n := range names {
		names[i] = h.Prefix + n
	}
	return "Commands: " + strings.Join(names, ", ")
}

// FormatCharacter renders the lookup reply, e.g.
// "Imp (Demon): Each night*, choose a player: they die. Wiki: https://...".
func FormatCharacter(c characters.Character) string {
	reply := fmt.Sprintf("%s (%s): %s", c.Name, c.Type, c.Rule)
	if c.Link != "" {
		reply += " Wiki: " + c.Link
	}
	return reply
}
