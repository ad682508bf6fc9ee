package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/thegrimgg/grimbot/characters"
	"github.com/thegrimgg/grimbot/lore"
)

// ChatStatus reports the chat connection state; *bot.Bot implements it.
type ChatStatus interface {
	Connected() bool
}

// Deps are the components the HTTP handlers read from. Nil fields make the
// corresponding readiness check fail.
type Deps struct {
	Catalog  *characters.Catalog
	Resolver *characters.Resolver
	Lore     *lore.Store
	Chat     ChatStatus
}

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	deps Deps
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{deps: deps}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", slog.Any("err", err), slog.String("component", "http"))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
