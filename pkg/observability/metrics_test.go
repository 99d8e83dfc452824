package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func door(t *testing.T) *rewind.Machine {
	t.Helper()
	m, err := rewind.CreateMachine(&domain.Graph{
		ID:      "door",
		Initial: "closed",
		States: map[string]domain.StateNode{
			"closed": {On: map[string]string{"OPEN": "open"}},
			"open":   {On: map[string]string{"CLOSE": "closed"}},
		},
	})
	require.NoError(t, err)
	return m
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	interp := rewind.Interpret(door(t), rewind.WithLifecycleHooks(metrics.Hooks()))
	interp.Send(domain.Named("OPEN"))
	interp.Send(domain.Named("CLOSE"))
	interp.Send(domain.Named("CLOSE")) // rejected
	interp.SetState("open")
	interp.Undo()
	interp.Redo()
	interp.Pause()
	interp.UndoToRoot()
	interp.Resume()

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("door", "graph")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("door", "override")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Rejected.WithLabelValues("door", "closed", "CLOSE")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("door", "undo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("door", "redo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("door", "pause")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("door", "resume")))

	count, err := testutil.GatherAndCount(reg, "rewind_history_depth")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)

	_, err = observability.NewMetrics(nil)
	assert.NoError(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	interp := rewind.Interpret(door(t), rewind.WithLifecycleHooks(observability.LogHooks(logger)))
	interp.Send(domain.Named("OPEN"))
	interp.Send(domain.Named("OPEN"))
	interp.Undo()

	out := buf.String()
	assert.Contains(t, out, "msg=commit")
	assert.Contains(t, out, "event=OPEN")
	assert.Contains(t, out, `msg="event rejected"`)
	assert.Contains(t, out, "msg=undo")
}
