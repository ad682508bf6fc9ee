// Package main provides a CLI tool that scrapes the Blood on the Clocktower
// wiki into the character CSV the bot loads at startup.
//
// Usage:
//
//	buildcharacters [--out FILE] [--base-url URL] [--delay DURATION]
//
// Flags:
//
//	--out: Output CSV path (default: characters.csv)
//	--base-url: Wiki root (default: https://wiki.bloodontheclocktower.com)
//	--delay: Pause between wiki requests (default: 250ms)
//
// The file is written only after the whole build succeeds, so an interrupted
// run leaves the previous dataset in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/thegrimgg/grimbot/characters"
	"github.com/thegrimgg/grimbot/wiki"
)

const userAgent = "grimbot-buildcharacters/1.0 (+https://join.thegrim.gg)"

func main() {
	out := flag.String("out", "characters.csv", "Output CSV path")
	baseURL := flag.String("base-url", wiki.DefaultBaseURL, "Wiki root URL")
	delay := flag.Duration("delay", wiki.DefaultDelay, "Pause between wiki requests")
	flag.Parse()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder := &wiki.Builder{
		Client: &wiki.Client{BaseURL: *baseURL, UserAgent: userAgent},
		Delay:  *delay,
	}
	if err := run(ctx, builder, *out); err != nil {
		slog.Error("build failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, builder *wiki.Builder, out string) error {
	rows, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no characters extracted")
	}
	if err := writeFile(out, rows); err != nil {
		return err
	}
	slog.Info("character dataset written", slog.String("path", out), slog.Int("characters", len(rows)))
	return nil
}

// writeFile writes rows to a temp file next to path and renames it into place.
func writeFile(path string, rows []characters.Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".characters-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := characters.WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
