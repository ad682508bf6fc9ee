package wiki

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/thegrimgg/grimbot/testutil"
)

func TestClientCategoryMembers(t *testing.T) {
	srv := testutil.NewMockWikiServer(t)
	srv.MockCategory("Demons", "Imp", "Po")
	c := &Client{BaseURL: srv.URL, UserAgent: "grimbot-test"}

	got, err := c.CategoryMembers(context.Background(), "Demons")
	if err != nil {
		t.Fatalf("CategoryMembers() error: %v", err)
	}
	if len(got) != 2 || got[0] != "Imp" || got[1] != "Po" {
		t.Errorf("CategoryMembers() = %q", got)
	}
	q := srv.Requests[0]
	for _, want := range []string{"cmlimit=500", "format=json", "list=categorymembers", "cmtitle=Category%3ADemons"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestClientErrors(t *testing.T) {
	srv := testutil.NewMockWikiServer(t)
	srv.MockPageStatus("Broken", http.StatusBadGateway)
	c := &Client{BaseURL: srv.URL + "/"}
	ctx := context.Background()

	tests := []struct {
		name        string
		call        func() error
		errContains string
	}{
		{"unknown category", func() error { _, err := c.CategoryMembers(ctx, "Nope"); return err }, "500"},
		{"empty category", func() error { _, err := c.CategoryMembers(ctx, ""); return err }, "category empty"},
		{"bad status", func() error { _, err := c.PageHTML(ctx, "Broken"); return err }, "502"},
		{"api error", func() error { _, err := c.PageHTML(ctx, "Missing"); return err }, "missingtitle"},
		{"empty title", func() error { _, err := c.PageHTML(ctx, ""); return err }, "title empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestClientPageHTML(t *testing.T) {
	srv := testutil.NewMockWikiServer(t)
	srv.MockPage("Fortune Teller", "<p>hello</p>")
	c := &Client{BaseURL: srv.URL}
	got, err := c.PageHTML(context.Background(), "Fortune Teller")
	if err != nil {
		t.Fatalf("PageHTML() error: %v", err)
	}
	if got != "<p>hello</p>" {
		t.Errorf("PageHTML() = %q", got)
	}
}

func TestPageURL(t *testing.T) {
	c := &Client{}
	if got := c.PageURL("Fortune Teller"); got != "https://wiki.bloodontheclocktower.com/Fortune_Teller" {
		t.Errorf("PageURL() = %q", got)
	}
}
