// Package observability provides structured logging, metrics, and
// distributed tracing for schedule construction and action emission.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds schedule context to a logger. Returns a new logger
// with algorithm and max_n fields.
func EnrichLogger(logger *slog.Logger, algorithm string, maxN int) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("algorithm", algorithm),
		slog.Int("max_n", maxN),
	)
}

// LogScheduleBuilt logs the completion of cost-table construction.
func LogScheduleBuilt(logger *slog.Logger, algorithm string, tableCells int, buildDuration time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("schedule built",
		slog.String("algorithm", algorithm),
		slog.Int("table_cells", tableCells),
		slog.Float64("build_ms", float64(buildDuration.Microseconds())/1000),
	)
}

// LogActionEmitted logs a single emitted action at debug level.
func LogActionEmitted(logger *slog.Logger, algorithm, action string, n int) {
	if logger == nil {
		return
	}
	logger.Debug("action emitted",
		slog.String("algorithm", algorithm),
		slog.String("action", action),
		slog.Int("n", n),
	)
}

// LogScheduleExhausted logs the terminal EndReverse of a schedule.
func LogScheduleExhausted(logger *slog.Logger, algorithm string, actionCount int) {
	if logger == nil {
		return
	}
	logger.Info("schedule exhausted",
		slog.String("algorithm", algorithm),
		slog.Int("actions_emitted", actionCount),
	)
}
