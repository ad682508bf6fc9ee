package wiki

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/thegrimgg/grimbot/characters"
)

// DefaultCategories are the wiki categories holding character pages.
var DefaultCategories = []string{"Townsfolk", "Outsiders", "Minions", "Demons", "Travellers", "Fabled", "Loric"}

// DefaultDelay is the pause between API requests.
const DefaultDelay = 250 * time.Millisecond

// Builder scrapes every character page into dataset rows.
type Builder struct {
	Client     *Client
	Categories []string
	Delay      time.Duration
}

// Build lists all character titles, then fetches and extracts each page in
// title order. A failed category listing aborts the build; a failed page is
// logged and skipped. Rows whose type does not map to a known character type
// are skipped too, so the output always loads.
func (b *Builder) Build(ctx context.Context) ([]characters.Row, error) {
	categories := b.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	seen := map[string]bool{}
	var titles []string
	slog.Info("fetching character lists from categories", slog.Int("categories", len(categories)))
	for i, category := range categories {
		if i > 0 {
			if err := b.pause(ctx); err != nil {
				return nil, err
			}
		}
		members, err := b.Client.CategoryMembers(ctx, category)
		if err != nil {
			return nil, err
		}
		slog.Info("category listed", slog.String("category", category), slog.Int("pages", len(members)))
		for _, t := range members {
			if !seen[t] {
				seen[t] = true
				titles = append(titles, t)
			}
		}
	}
	sort.Strings(titles)
	slog.Info("found unique characters", slog.Int("count", len(titles)))

	rows := make([]characters.Row, 0, len(titles))
	for i, title := range titles {
		if err := b.pause(ctx); err != nil {
			return rows, err
		}
		slog.Debug("fetching page", slog.Int("n", i+1), slog.Int("total", len(titles)), slog.String("title", title))
		page, err := b.Client.PageHTML(ctx, title)
		if err != nil {
			if ctx.Err() != nil {
				return rows, ctx.Err()
			}
			slog.Warn("page fetch failed; skipping", slog.String("title", title), slog.Any("err", err))
			continue
		}
		row, err := Extract(title, b.Client.PageURL(title), page)
		if err != nil {
			slog.Warn("page parse failed; skipping", slog.String("title", title), slog.Any("err", err))
			continue
		}
		t, err := characters.ParseType(row.Type)
		if err != nil {
			slog.Warn("unrecognised character type; skipping", slog.String("title", title), slog.String("type", row.Type))
			continue
		}
		row.Type = t.String()
		rows = append(rows, row)
	}
	return rows, nil
}

func (b *Builder) pause(ctx context.Context) error {
	if b.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
