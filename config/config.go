// Package config loads environment variables and provides a typed Config used across the bot.
// It applies sensible defaults so the binary can run locally with minimal setup.
// Use Validate before connecting to chat.
package config

import (
	"errors"
	"os"
	"strings"
)

// DefaultJoinMessage is the !join reply when JOIN_MESSAGE is unset.
const DefaultJoinMessage = "Come play with us!  Join our Discord community!  https://join.thegrim.gg"

type Config struct {
	// Twitch
	TwitchBotUsername string
	TwitchOAuthToken  string
	Channels          []string

	// Bot
	CharactersPath string
	CommandPrefix  string
	JoinMessage    string

	// Service
	HTTPAddr     string
	OTLPEndpoint string
}

// Load reads environment variables and applies defaults. Missing credentials are
// not an error here; see Validate.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchBotUsername = strings.ToLower(os.Getenv("TWITCH_BOT_USERNAME"))
	cfg.TwitchOAuthToken = firstEnv("TWITCH_OAUTH_TOKEN", "TOKEN")
	cfg.Channels = ParseChannels(firstEnv("CHANNELS", "TWITCH_CHANNELS"))

	cfg.CharactersPath = os.Getenv("CHARACTERS_CSV")
	if cfg.CharactersPath == "" {
		cfg.CharactersPath = "characters.csv"
	}
	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	cfg.JoinMessage = os.Getenv("JOIN_MESSAGE")
	if cfg.JoinMessage == "" {
		cfg.JoinMessage = DefaultJoinMessage
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	if strings.ContainsAny(cfg.CommandPrefix, " \t") {
		return nil, errors.New("invalid COMMAND_PREFIX: must not contain whitespace")
	}
	return cfg, nil
}

// Validate checks the fields required to connect to Twitch chat.
func (c *Config) Validate() error {
	var missing []string
	if c.TwitchOAuthToken == "" {
		missing = append(missing, "TWITCH_OAUTH_TOKEN")
	}
	if c.TwitchBotUsername == "" {
		missing = append(missing, "TWITCH_BOT_USERNAME")
	}
	if len(c.Channels) == 0 {
		missing = append(missing, "CHANNELS")
	}
	if len(missing) > 0 {
		return errors.New("missing twitch env: require " + strings.Join(missing, ", "))
	}
	return nil
}

// ParseChannels splits a comma separated channel list, dropping blanks and a
// leading '#', lower-casing and de-duplicating while keeping order.
func ParseChannels(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		ch := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
