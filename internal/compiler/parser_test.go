package compiler

import (
	"os"
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_YAML(t *testing.T) {
	data, err := os.ReadFile("testdata/kitchen.yaml")
	require.NoError(t, err)

	g, err := NewParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "kitchen", g.ID)
	assert.Equal(t, "idle", g.Initial)
	assert.Equal(t, 0, g.Context["counter"])
	assert.Equal(t, []string{"completed", "cooking", "idle"}, g.StateIDs())

	target, ok := g.Resolve("cooking", domain.Named("DONE"))
	assert.True(t, ok)
	assert.Equal(t, "completed", target, "object form with target")

	target, ok = g.Resolve("completed", domain.Named("RESET"))
	assert.True(t, ok)
	assert.Equal(t, "idle", target, "object form with the 'to' alias")

	assert.Nil(t, g.States["completed"].On)
}

func TestParser_Parse_JSON(t *testing.T) {
	doc := `{
		"initial": "a",
		"context": {"user": {"name": "ada"}},
		"states": {
			"a": {"on": {"GO": "b"}},
			"b": {}
		}
	}`

	g, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "", g.ID)
	assert.Equal(t, map[string]any{"name": "ada"}, g.Context["user"])
	assert.Equal(t, []string{"GO"}, g.EnabledEvents("a"))
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Malformed", "initial: [unterminated"},
		{"Empty", ""},
		{"Unknown Key", "initial: a\nstates: {a: {}}\ntransitions: []"},
		{"Wrong Transition Shape", "initial: a\nstates: {a: {on: {GO: [b]}}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	t.Run("Lenient Ignores Unknown Keys", func(t *testing.T) {
		g, err := NewParser(WithLenient()).Parse([]byte("initial: a\nstates: {a: {}}\ntransitions: []"))
		require.NoError(t, err)
		assert.Equal(t, "a", g.Initial)
	})
}
