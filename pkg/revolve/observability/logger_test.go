package observability

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "revolve", 4))
}

func TestEnrichLogger_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := EnrichLogger(newTestLogger(&buf), "revolve", 4)
	logger.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "algorithm=revolve")
	assert.Contains(t, out, "max_n=4")
}

func TestLogScheduleBuilt_NilLoggerNoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		LogScheduleBuilt(nil, "revolve", 10, time.Millisecond)
	})
}

func TestLogActionEmitted_WritesExpectedFields(t *testing.T) {
	var buf bytes.Buffer
	LogActionEmitted(newTestLogger(&buf), "revolve", "Forward", 2)

	out := buf.String()
	assert.Contains(t, out, "action=Forward")
	assert.Contains(t, out, "n=2")
}

func TestLogScheduleExhausted_WritesActionCount(t *testing.T) {
	var buf bytes.Buffer
	LogScheduleExhausted(newTestLogger(&buf), "revolve", 16)

	assert.Contains(t, buf.String(), "actions_emitted=16")
}
