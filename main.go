// Command grimbot is the Twitch chat bot answering Blood on the Clocktower
// character lookups and per-channel lore commands.
// It:
//   - Loads configuration and initializes structured logging.
//   - Loads the character catalog CSV and builds the alias resolver; a
//     malformed dataset aborts startup.
//   - Creates the per-channel lore store for the configured channels.
//   - Connects to Twitch IRC and answers commands.
//   - Exposes a minimal HTTP server with /healthz, /readyz, /metrics and
//     read-only catalog/lore views.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/thegrimgg/grimbot/bot"
	"github.com/thegrimgg/grimbot/characters"
	"github.com/thegrimgg/grimbot/config"
	"github.com/thegrimgg/grimbot/lore"
	"github.com/thegrimgg/grimbot/server"
	"github.com/thegrimgg/grimbot/telemetry"
)

const version = "1.0.0"

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	telemetry.Init()
	shutdown, err := telemetry.InitTracing(cfg.OTLPEndpoint, "grimbot", version)
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	catalog, err := characters.LoadFile(cfg.CharactersPath)
	if err != nil {
		slog.Error("character catalog load failed", slog.String("path", cfg.CharactersPath), slog.Any("err", err))
		os.Exit(1)
	}
	telemetry.SetCatalogSize(catalog.Len())
	slog.Info("character catalog loaded", slog.Int("characters", catalog.Len()), slog.String("path", cfg.CharactersPath))

	resolver := characters.NewResolver(catalog)
	store := lore.NewStore(cfg.Channels)
	handler := bot.NewHandler(resolver, store, cfg.CommandPrefix, cfg.JoinMessage)
	chatBot := bot.New(cfg.TwitchBotUsername, cfg.TwitchOAuthToken, cfg.Channels, handler)

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return chatBot.Run(gctx)
	})
	g.Go(func() error {
		return server.Start(gctx, server.Deps{
			Catalog:  catalog,
			Resolver: resolver,
			Lore:     store,
			Chat:     chatBot,
		}, cfg.HTTPAddr)
	})

	slog.Info("grimbot started", slog.Any("channels", cfg.Channels), slog.String("prefix", cfg.CommandPrefix))
	if err := g.Wait(); err != nil {
		slog.Error("grimbot exited with error", slog.Any("err", err))
		shutdown()
		os.Exit(1)
	}
	slog.Info("shutting down")
}

// setupLogging configures the default logger from LOG_LEVEL and LOG_FORMAT.
// Defaults: level=info, format=text.
func setupLogging() {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()), slog.String("format", map[bool]string{true: "json", false: "text"}[format == "json"]))
}
