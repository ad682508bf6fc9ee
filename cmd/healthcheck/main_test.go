package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy", http.StatusOK, false},
		{"unhealthy", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			err := probe(context.Background(), srv.URL)
			if (err != nil) != tt.wantErr {
				t.Errorf("probe() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	t.Setenv("HEALTHCHECK_URL", "")
	if got := target(); got != defaultURL {
		t.Errorf("target() = %q, want %q", got, defaultURL)
	}
	t.Setenv("HEALTHCHECK_URL", "http://bot:9000/healthz")
	if got := target(); got != "http://bot:9000/healthz" {
		t.Errorf("target() = %q", got)
	}
}
