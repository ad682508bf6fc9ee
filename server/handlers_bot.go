package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/thegrimgg/grimbot/lore"
)

type characterResponse struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rule   string `json:"rule"`
	Flavor string `json:"flavor"`
	Link   string `json:"link,omitempty"`
	Icon   string `json:"icon"`
}

// HandleCharacter resolves ?name= exactly as the chat command does.
func (h *Handlers) HandleCharacter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if h.deps.Resolver == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}
	ch, ok := h.deps.Resolver.Resolve(name)
	if !ok {
		writeError(w, http.StatusNotFound, "character not found")
		return
	}
	writeJSON(w, http.StatusOK, characterResponse{
		Name:   ch.Name,
		Type:   ch.Type.String(),
		Rule:   ch.Rule,
		Flavor: ch.Flavor,
		Link:   ch.Link,
		Icon:   ch.Icon(),
	})
}

// HandleLore returns the set lore fields of /lore/{channel}.
func (h *Handlers) HandleLore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	channel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/lore/"), "/")
	if channel == "" || strings.Contains(channel, "/") {
		writeError(w, http.StatusNotFound, "channel required")
		return
	}
	if h.deps.Lore == nil {
		writeError(w, http.StatusServiceUnavailable, "lore store not configured")
		return
	}
	snap, err := h.deps.Lore.Snapshot(channel)
	var uce *lore.UnknownChannelError
	if errors.As(err, &uce) {
		writeError(w, http.StatusNotFound, "unknown channel")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	fields := make(map[string]string, len(snap))
	for f, v := range snap {
		fields[string(f)] = v
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"channel": lore.NormalizeChannel(channel),
		"fields":  fields,
	})
}
