package rewind_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitchen() *domain.Graph {
	return &domain.Graph{
		ID:      "kitchen",
		Initial: "idle",
		Context: domain.Context{"counter": 0},
		States: map[string]domain.StateNode{
			"idle":      {On: map[string]string{"START": "cooking"}},
			"cooking":   {On: map[string]string{"TICK": "cooking", "DONE": "completed"}},
			"completed": {},
		},
	}
}

func TestCreateMachine(t *testing.T) {
	t.Run("Freezes A Copy", func(t *testing.T) {
		g := kitchen()
		m, err := rewind.CreateMachine(g)
		require.NoError(t, err)

		g.States["idle"].On["START"] = "completed"
		target, _ := m.Graph().Resolve("idle", domain.Named("START"))
		assert.Equal(t, "cooking", target)
		assert.Equal(t, "kitchen", m.ID())
		assert.Empty(t, m.Warnings())
	})

	t.Run("Rejects Invalid Graph", func(t *testing.T) {
		g := kitchen()
		g.Initial = "ghost"
		_, err := rewind.CreateMachine(g)
		assert.True(t, errors.Is(err, domain.ErrInvalidGraph))

		_, err = rewind.CreateMachine(nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidGraph))
	})

	t.Run("Rejects Reserved Key", func(t *testing.T) {
		g := kitchen()
		g.On = map[string]string{domain.OverrideKey: "idle"}
		_, err := rewind.CreateMachine(g)
		assert.ErrorContains(t, err, "reserved")
	})

	t.Run("Keeps Warnings", func(t *testing.T) {
		g := kitchen()
		g.States["island"] = domain.StateNode{}
		m, err := rewind.CreateMachine(g)
		require.NoError(t, err)
		assert.Len(t, m.Warnings(), 1)
	})
}

func TestLoadMachine(t *testing.T) {
	m, err := rewind.LoadMachine(context.Background(), memory.NewLoader(kitchen()))
	require.NoError(t, err)
	assert.Equal(t, "idle", m.Graph().Initial)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rewind.LoadMachine(ctx, memory.NewLoader(kitchen()))
	assert.ErrorContains(t, err, "memory:kitchen")
}

func TestInterpret(t *testing.T) {
	m, err := rewind.CreateMachine(kitchen())
	require.NoError(t, err)

	t.Run("Auto Starts", func(t *testing.T) {
		i := rewind.Interpret(m)
		assert.Equal(t, rewind.StatusStarted, i.Status())
		assert.Same(t, m, i.Machine())

		snap := i.Snapshot()
		assert.Equal(t, "idle", snap.Value)
		assert.Equal(t, 0, snap.Context["counter"])
		assert.True(t, snap.Event.IsZero())
		assert.False(t, snap.Done)
	})

	t.Run("WithoutAutoStart", func(t *testing.T) {
		i := rewind.Interpret(m, rewind.WithoutAutoStart())
		assert.Equal(t, rewind.StatusCreated, i.Status())
		assert.False(t, i.Send(domain.Named("START")))
		i.Start()
		assert.True(t, i.Send(domain.Named("START")))
	})

	t.Run("Interpreters Share Nothing", func(t *testing.T) {
		a, b := rewind.Interpret(m), rewind.Interpret(m)
		a.Send(domain.Named("START"))
		assert.Equal(t, "cooking", a.Value())
		assert.Equal(t, "idle", b.Value())
	})

	t.Run("Done Is Derived From The Graph", func(t *testing.T) {
		i := rewind.Interpret(m)
		i.Send(domain.Named("START"))
		i.Send(domain.Named("DONE"))
		assert.True(t, i.Done())
		assert.False(t, i.Snapshot().Done, "snapshots never compute done")
	})

	t.Run("Hooks Accumulate", func(t *testing.T) {
		var a, b int
		i := rewind.Interpret(m,
			rewind.WithLifecycleHooks(domain.LifecycleHooks{OnCommit: func(*domain.HistoryEvent) { a++ }}),
			rewind.WithLifecycleHooks(domain.LifecycleHooks{OnCommit: func(*domain.HistoryEvent) { b++ }}),
		)
		i.Send(domain.Named("START"))
		i.SetState("idle")
		assert.Equal(t, 2, a)
		assert.Equal(t, 2, b)
	})
}

func TestInterpret_WriteClearsRedo(t *testing.T) {
	m, err := rewind.CreateMachine(kitchen())
	require.NoError(t, err)

	sequences := [][]string{
		{"START", "TICK", "undo", "TICK"},
		{"START", "DONE", "undo", "undo", "redo", "DONE"},
		{"START", "root", "redo", "TICK"},
	}

	for _, seq := range sequences {
		i := rewind.Interpret(m)
		for _, step := range seq {
			switch step {
			case "undo":
				i.Undo()
			case "redo":
				i.Redo()
			case "root":
				i.UndoToRoot()
			default:
				hadRedo := i.CanRedo()
				if i.Send(domain.Named(step)) {
					assert.False(t, i.CanRedo(), "after %s (redo before: %v)", step, hadRedo)
				}
			}
		}
	}
}
