package domain_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func kitchenGraph() *domain.Graph {
	return &domain.Graph{
		ID:      "kitchen",
		Initial: "idle",
		Context: domain.Context{"counter": 0},
		States: map[string]domain.StateNode{
			"idle":      {On: map[string]string{"START": "cooking"}},
			"cooking":   {On: map[string]string{"TICK": "cooking", "DONE": "completed", "RESET": "cooking"}},
			"completed": {},
		},
		On: map[string]string{"RESET": "idle"},
	}
}

func TestGraph_Resolve(t *testing.T) {
	g := kitchenGraph()

	tests := []struct {
		name    string
		state   string
		event   domain.Event
		want    string
		wantHit bool
	}{
		{"Local Transition", "idle", domain.Named("START"), "cooking", true},
		{"Structured Event Normalized", "cooking", domain.WithPayload("TICK", map[string]any{"by": 10}), "cooking", true},
		{"Root Fallback", "completed", domain.Named("RESET"), "idle", true},
		{"Local Shadows Root", "cooking", domain.Named("RESET"), "cooking", true},
		{"Unknown Event", "idle", domain.Named("DONE"), "", false},
		{"Unknown State Uses Root", "ghost", domain.Named("RESET"), "idle", true},
		{"Override Never Resolves", "idle", domain.Override(), "", false},
		{"Zero Event Never Resolves", "idle", domain.Event{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Resolve(tt.state, tt.event)
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGraph_EnabledEvents(t *testing.T) {
	g := kitchenGraph()

	assert.Equal(t, []string{"RESET", "START"}, g.EnabledEvents("idle"))
	assert.Equal(t, []string{"DONE", "RESET", "TICK"}, g.EnabledEvents("cooking"))
	assert.Equal(t, []string{"RESET"}, g.EnabledEvents("completed"))
	assert.False(t, g.IsTerminal("completed"))

	g.On = nil
	assert.True(t, g.IsTerminal("completed"))
	assert.Empty(t, g.EnabledEvents("completed"))
}

func TestGraph_Clone(t *testing.T) {
	g := kitchenGraph()
	c := g.Clone()

	c.States["idle"].On["START"] = "completed"
	c.On["RESET"] = "cooking"
	c.Context["counter"] = 99

	target, _ := g.Resolve("idle", domain.Named("START"))
	assert.Equal(t, "cooking", target)
	assert.Equal(t, "idle", g.On["RESET"])
	assert.Equal(t, 0, g.Context["counter"])
	assert.Equal(t, []string{"completed", "cooking", "idle"}, g.StateIDs())
}
