package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kitchenYAML = `id: kitchen
initial: idle
context:
  counter: 0
states:
  idle:
    on:
      START: cooking
  cooking:
    on:
      TICK: cooking
      DONE: completed
  completed: {}
`

func newTestREPL(t *testing.T) (*REPL, *rewind.Interpreter, *bytes.Buffer) {
	t.Helper()
	m, err := rewind.CreateMachine(&domain.Graph{
		ID:      "kitchen",
		Initial: "idle",
		Context: domain.Context{"counter": 0},
		States: map[string]domain.StateNode{
			"idle":      {On: map[string]string{"START": "cooking"}},
			"cooking":   {On: map[string]string{"TICK": "cooking", "DONE": "completed"}},
			"completed": {},
		},
	})
	require.NoError(t, err)

	interp := rewind.Interpret(m)
	var out bytes.Buffer
	return NewREPL(interp, &out), interp, &out
}

func exec(t *testing.T, r *REPL, line string) {
	t.Helper()
	quit, err := r.Exec(line)
	require.NoError(t, err, line)
	require.False(t, quit, line)
}

func TestREPL_Exec(t *testing.T) {
	r, interp, out := newTestREPL(t)

	exec(t, r, "send START")
	assert.Equal(t, "cooking", interp.Value())
	assert.Contains(t, out.String(), "cooking [undo:1 redo:0]")

	exec(t, r, `send TICK {"counter": 10}`)
	assert.Equal(t, float64(10), interp.Context()["counter"])
	assert.Equal(t, domain.EventStructured, interp.Snapshot().Event.Kind())

	out.Reset()
	exec(t, r, "send START")
	assert.Contains(t, out.String(), "send START: nothing to do")
	assert.Equal(t, "cooking", interp.Value())

	exec(t, r, "pause")
	exec(t, r, "undo")
	exec(t, r, "redo")
	assert.Equal(t, float64(10), interp.Context()["counter"])

	out.Reset()
	exec(t, r, `set completed {"counter": 1}`)
	assert.True(t, interp.Current().IsOverride())
	assert.Contains(t, out.String(), "(paused at cooking)")
	assert.Contains(t, out.String(), "(final)")

	exec(t, r, "root")
	assert.Equal(t, "idle", interp.Value())
	assert.False(t, interp.CanUndo())

	exec(t, r, "resume")
	assert.Equal(t, "cooking", interp.Value())
	assert.False(t, interp.IsPaused())

	exec(t, r, "pause")
	exec(t, r, "clear")
	assert.False(t, interp.IsPaused())

	quit, err := r.Exec("quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestREPL_Errors(t *testing.T) {
	r, _, _ := newTestREPL(t)

	tests := []struct {
		line string
		want string
	}{
		{"fly", "unknown command"},
		{"send", "usage: send"},
		{"set", "usage: set"},
		{"send TICK {bad", "invalid JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := r.Exec(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	quit, err := r.Exec("   ")
	assert.NoError(t, err)
	assert.False(t, quit)
}

func TestREPL_Introspection(t *testing.T) {
	r, _, out := newTestREPL(t)
	exec(t, r, "send START")

	t.Run("Branches", func(t *testing.T) {
		out.Reset()
		exec(t, r, "branches")
		assert.Contains(t, out.String(), "| DONE | ✓ | ✓ | ✓ |")
		assert.Contains(t, out.String(), "| `$override` |")
	})

	t.Run("History", func(t *testing.T) {
		out.Reset()
		exec(t, r, "history")
		assert.Equal(t, "1. idle\n2. cooking ← START\n", out.String())
	})

	t.Run("Snapshot", func(t *testing.T) {
		out.Reset()
		exec(t, r, "snapshot")
		assert.Contains(t, out.String(), `"value": "cooking"`)
	})

	t.Run("Diff", func(t *testing.T) {
		out.Reset()
		exec(t, r, "diff")
		assert.Contains(t, out.String(), `"value": "cooking"`)
		assert.NotContains(t, out.String(), `"counter"`)

		exec(t, r, "root")
		out.Reset()
		exec(t, r, "diff")
		assert.Contains(t, out.String(), `"value": "idle"`)
	})

	t.Run("Graph", func(t *testing.T) {
		out.Reset()
		exec(t, r, "graph")
		assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
		assert.Contains(t, out.String(), "class idle current;")
	})

	t.Run("Help", func(t *testing.T) {
		out.Reset()
		exec(t, r, "help")
		for _, c := range commands {
			assert.Contains(t, out.String(), c.usage)
		}
		assert.Contains(t, out.String(), "diff the current node against its parent")
	})
}

func TestREPL_Run(t *testing.T) {
	r, interp, out := newTestREPL(t)

	in := strings.NewReader("send START\nbogus\nsend TICK\nquit\nsend DONE\n")
	require.NoError(t, r.Run(context.Background(), in))

	assert.Equal(t, "cooking", interp.Value(), "commands after quit are ignored")
	assert.Contains(t, out.String(), "error: unknown command")
	assert.NotContains(t, out.String(), "> ", "no prompt for piped input")
}

func TestREPL_RunStopsOnEOFAndCancel(t *testing.T) {
	r, _, _ := newTestREPL(t)
	require.NoError(t, r.Run(context.Background(), strings.NewReader("send START")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()
	assert.ErrorIs(t, r.Run(ctx, pr), context.Canceled)
}

func TestREPL_QuitReleasesReader(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 20 {
		r, _, _ := newTestREPL(t)
		require.NoError(t, r.Run(context.Background(), strings.NewReader("quit\nhelp\nhelp\n")))
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond, "reader goroutines outlive Run")
}

func TestExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitchen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(kitchenYAML), 0o644))

	var out bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		GraphPath: path,
		Context:   `{"counter": 5}`,
		Plain:     true,
	}, strings.NewReader("send START\nsnapshot\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"counter": 5`)
	assert.Contains(t, out.String(), `"value": "cooking"`)

	t.Run("Bad Context", func(t *testing.T) {
		err := Execute(context.Background(), RunOptions{GraphPath: path, Context: "{"}, strings.NewReader(""), &out)
		assert.ErrorContains(t, err, "--context")
	})

	t.Run("Missing File", func(t *testing.T) {
		err := Execute(context.Background(), RunOptions{GraphPath: filepath.Join(t.TempDir(), "nope.yaml")}, strings.NewReader(""), &out)
		assert.Error(t, err)
	})

	t.Run("Bad Log Level", func(t *testing.T) {
		err := Execute(context.Background(), RunOptions{GraphPath: path, LogLevel: "loud"}, strings.NewReader(""), &out)
		assert.ErrorContains(t, err, "invalid log level")
	})
}
