package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thegrimgg/grimbot/characters"
	"github.com/thegrimgg/grimbot/lore"
)

type fakeChat struct{ connected bool }

func (f fakeChat) Connected() bool { return f.connected }

func newTestDeps(t *testing.T, connected bool) Deps {
	t.Helper()
	c, err := characters.Load([]characters.Row{
		{Name: "Imp", Type: "Demon", Rule: "they die", Flavor: "N/A", Link: "https://wiki.bloodontheclocktower.com/Imp"},
		{Name: "Fortune Teller", Type: "Townsfolk", Rule: "choose 2 players"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return Deps{
		Catalog:  c,
		Resolver: characters.NewResolver(c),
		Lore:     lore.NewStore([]string{"grim"}),
		Chat:     fakeChat{connected: connected},
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzOK(t *testing.T) {
	rr := serve(NewMux(Deps{}), http.MethodGet, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != "ok" {
		t.Fatalf("expected ok body, got %q", got)
	}
	if rr.Header().Get("X-Correlation-ID") == "" {
		t.Error("missing X-Correlation-ID header")
	}
}

func TestCorrelationHeaderReused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	rr := httptest.NewRecorder()
	NewMux(Deps{}).ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Correlation-ID"); got != "corr-123" {
		t.Errorf("X-Correlation-ID = %q, want corr-123", got)
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		deps       Deps
		wantStatus int
		wantCheck  string
	}{
		{"ready", newTestDeps(t, true), http.StatusOK, ""},
		{"chat down", newTestDeps(t, false), http.StatusServiceUnavailable, "chat"},
		{"no catalog", Deps{Chat: fakeChat{connected: true}}, http.StatusServiceUnavailable, "catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(NewMux(tt.deps), http.MethodGet, "/readyz")
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["failed_check"] != tt.wantCheck {
				t.Errorf("failed_check = %q, want %q", body["failed_check"], tt.wantCheck)
			}
		})
	}
}

func TestHandleCharacter(t *testing.T) {
	h := NewMux(newTestDeps(t, true))

	rr := serve(h, http.MethodGet, "/characters?name=FORTUNETELLER")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var got characterResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Fortune Teller" || got.Type != "Townsfolk" || got.Icon == "" {
		t.Errorf("response = %+v", got)
	}

	for target, want := range map[string]int{
		"/characters?name=xyzzy":         http.StatusNotFound,
		"/characters?name=no-such-thing": http.StatusNotFound,
		"/characters":                    http.StatusBadRequest,
	} {
		if rr := serve(h, http.MethodGet, target); rr.Code != want {
			t.Errorf("GET %s = %d, want %d", target, rr.Code, want)
		}
	}
	if rr := serve(h, http.MethodPost, "/characters?name=imp"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rr.Code)
	}
}

func TestHandleLore(t *testing.T) {
	deps := newTestDeps(t, true)
	if err := deps.Lore.Set("grim", lore.Amnesiac, "Drunk", true); err != nil {
		t.Fatal(err)
	}
	h := NewMux(deps)

	rr := serve(h, http.MethodGet, "/lore/Grim")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Channel string            `json:"channel"`
		Fields  map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Channel != "grim" || body.Fields["amne"] != "Drunk" || len(body.Fields) != 1 {
		t.Errorf("body = %+v", body)
	}

	if rr := serve(h, http.MethodGet, "/lore/elsewhere"); rr.Code != http.StatusNotFound {
		t.Errorf("unknown channel status = %d, want 404", rr.Code)
	}
	if rr := serve(h, http.MethodGet, "/lore/"); rr.Code != http.StatusNotFound {
		t.Errorf("empty channel status = %d, want 404", rr.Code)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name              string
		cfg               *corsConfig
		origin            string
		expectAllowOrigin string
	}{
		{"permissive", &corsConfig{permissive: true}, "https://example.com", "*"},
		{"restricted match", &corsConfig{allowedOrigins: []string{"https://overlay.example.com"}}, "https://overlay.example.com", "https://overlay.example.com"},
		{"restricted miss", &corsConfig{allowedOrigins: []string{"https://overlay.example.com"}}, "https://evil.com", ""},
		{"wildcard subdomain", &corsConfig{allowedOrigins: []string{"*.example.com"}}, "https://app.example.com", "https://app.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := withCORSConfig(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), tt.cfg)
			req := httptest.NewRequest(http.MethodGet, "/characters", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.expectAllowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.expectAllowOrigin)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	h := withCORSConfig(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for OPTIONS request")
	}), &corsConfig{permissive: true})
	rr := serve(h, http.MethodOptions, "/characters")
	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rr.Code)
	}
}

func TestLoadCORSConfig(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	if cfg := loadCORSConfig(); !cfg.permissive {
		t.Error("expected permissive without origins")
	}
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	cfg := loadCORSConfig()
	if cfg.permissive || len(cfg.allowedOrigins) != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestStartAndShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Start(ctx, Deps{}, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
