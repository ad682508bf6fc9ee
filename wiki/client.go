// Package wiki builds the character dataset from the Blood on the Clocktower
// wiki. It lists character pages through the MediaWiki API category members
// endpoint, fetches each page's parsed HTML and extracts rule, flavour text
// and character type from it.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public wiki.
const DefaultBaseURL = "https://wiki.bloodontheclocktower.com"

// Client is a minimal MediaWiki API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

// PageURL returns the human-facing URL of a wiki page.
func (c *Client) PageURL(title string) string {
	return c.baseURL() + "/" + strings.ReplaceAll(title, " ", "_")
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/api.php?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.http().Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("wiki api request failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CategoryMembers lists the page titles in Category:<category>.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if category == "" {
		return nil, fmt.Errorf("category empty")
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", "Category:"+category)
	params.Set("cmlimit", "500")
	var body struct {
		Error *apiError `json:"error"`
		Query struct {
			CategoryMembers []struct {
				Title string `json:"title"`
			} `json:"categorymembers"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &body); err != nil {
		return nil, fmt.Errorf("category %s: %w", category, err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("category %s: %s: %s", category, body.Error.Code, body.Error.Info)
	}
	out := make([]string, 0, len(body.Query.CategoryMembers))
	for _, m := range body.Query.CategoryMembers {
		out = append(out, m.Title)
	}
	return out, nil
}

// PageHTML returns the parsed HTML body of a page.
func (c *Client) PageHTML(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title empty")
	}
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text")
	var body struct {
		Error *apiError `json:"error"`
		Parse struct {
			Text struct {
				HTML string `json:"*"`
			} `json:"text"`
		} `json:"parse"`
	}
	if err := c.get(ctx, params, &body); err != nil {
		return "", fmt.Errorf("page %s: %w", title, err)
	}
	if body.Error != nil {
		return "", fmt.Errorf("page %s: %s: %s", title, body.Error.Code, body.Error.Info)
	}
	return body.Parse.Text.HTML, nil
}
