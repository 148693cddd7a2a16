package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_DoesNotPanic(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordTableBuild(context.Background(), "revolve", 100, 5*time.Millisecond)
		m.RecordActionEmitted(context.Background(), "revolve", "Forward")
		m.RecordRecomputation(context.Background(), "revolve", 3)
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_DoesNotPanic(t *testing.T) {
	m := NoopSpanManager{}

	assert.NotPanics(t, func() {
		ctx, span := m.StartBuildSpan(context.Background(), "revolve", 10)
		m.AddSpanEvent(ctx, "built")
		m.EndSpanWithError(span, nil)

		ctx, span = m.StartScheduleSpan(context.Background(), "revolve")
		m.EndSpanWithError(span, assertErr)
		_ = ctx
	})
}

var assertErr = errAssertion{}

type errAssertion struct{}

func (errAssertion) Error() string { return "boom" }
