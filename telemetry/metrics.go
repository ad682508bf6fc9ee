// Package telemetry provides Prometheus metrics, OpenTelemetry tracing and
// correlation-id aware logging helpers for the bot.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	CommandsTotal    *prometheus.CounterVec // labels: command, outcome
	CharacterLookups *prometheus.CounterVec // labels: result (hit|miss)
	LoreUpdates      *prometheus.CounterVec // labels: field, outcome

	// Histograms (seconds)
	CommandDuration prometheus.Observer

	// Gauges
	CatalogSize   prometheus.Gauge
	ChatConnected prometheus.Gauge // 1=connected,0=disconnected
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{Name: "grimbot_commands_total", Help: "Chat commands handled by command and outcome"}, []string{"command", "outcome"})
		CharacterLookups = promauto.NewCounterVec(prometheus.CounterOpts{Name: "grimbot_character_lookups_total", Help: "Character lookups by result"}, []string{"result"})
		LoreUpdates = promauto.NewCounterVec(prometheus.CounterOpts{Name: "grimbot_lore_updates_total", Help: "Lore field set attempts by field and outcome"}, []string{"field", "outcome"})
		CommandDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "grimbot_command_duration_seconds", Help: "Time spent handling one chat command", Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1}})
		CatalogSize = promauto.NewGauge(prometheus.GaugeOpts{Name: "grimbot_catalog_characters", Help: "Characters loaded into the catalog"})
		ChatConnected = promauto.NewGauge(prometheus.GaugeOpts{Name: "grimbot_chat_connected", Help: "Chat connection state connected=1 disconnected=0"})
	})
}

// IncCommand counts one handled command.
func IncCommand(command, outcome string) {
	if CommandsTotal != nil {
		CommandsTotal.WithLabelValues(command, outcome).Inc()
	}
}

// IncLookup counts one character lookup.
func IncLookup(hit bool) {
	if CharacterLookups == nil {
		return
	}
	if hit {
		CharacterLookups.WithLabelValues("hit").Inc()
	} else {
		CharacterLookups.WithLabelValues("miss").Inc()
	}
}

// IncLoreUpdate counts one set attempt for a lore field.
func IncLoreUpdate(field, outcome string) {
	if LoreUpdates != nil {
		LoreUpdates.WithLabelValues(field, outcome).Inc()
	}
}

// SetCatalogSize records the number of loaded characters.
func SetCatalogSize(n int) {
	if CatalogSize != nil {
		CatalogSize.Set(float64(n))
	}
}

// SetChatConnected sets the gauge to 1 if connected else 0.
func SetChatConnected(connected bool) {
	if ChatConnected == nil {
		return
	}
	if connected {
		ChatConnected.Set(1)
	} else {
		ChatConnected.Set(0)
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context carrying the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
