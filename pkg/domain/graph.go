package domain

import (
	"maps"
	"slices"
)

// StateNode holds the events a single state responds to.
type StateNode struct {
	On map[string]StateID `json:"on,omitempty" yaml:"on,omitempty"`
}

// Graph is the declarative transition graph of a machine.
// It is treated as read-only once handed to a machine.
type Graph struct {
	ID      string               `json:"id,omitempty" yaml:"id,omitempty"`
	Initial StateID              `json:"initial" yaml:"initial"`
	Context Context              `json:"context,omitempty" yaml:"context,omitempty"`
	States  map[StateID]StateNode `json:"states" yaml:"states"`

	// On holds root-level transitions, consulted when a state does not
	// handle an event locally.
	On map[string]StateID `json:"on,omitempty" yaml:"on,omitempty"`
}

// Resolve finds the target state for event when the machine is in current.
// The state-local map wins over the root map. Override events never resolve
// through the graph.
func (g *Graph) Resolve(current StateID, event Event) (StateID, bool) {
	if event.kind != EventNamed && event.kind != EventStructured {
		return "", false
	}
	key := event.Key()
	if node, ok := g.States[current]; ok {
		if target, ok := node.On[key]; ok {
			return target, true
		}
	}
	target, ok := g.On[key]
	return target, ok
}

// EnabledEvents lists the event keys state accepts, local and root-level, sorted.
func (g *Graph) EnabledEvents(state StateID) []string {
	seen := make(map[string]struct{})
	if node, ok := g.States[state]; ok {
		for key := range node.On {
			seen[key] = struct{}{}
		}
	}
	for key := range g.On {
		seen[key] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// IsTerminal reports whether state accepts no events at all.
func (g *Graph) IsTerminal(state StateID) bool {
	return len(g.EnabledEvents(state)) == 0
}

// HasState reports whether state is declared.
func (g *Graph) HasState(state StateID) bool {
	_, ok := g.States[state]
	return ok
}

// StateIDs returns the declared states, sorted.
func (g *Graph) StateIDs() []StateID {
	return slices.Sorted(maps.Keys(g.States))
}

// Clone deep-copies the graph structure. Context values are copied shallowly.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		ID:      g.ID,
		Initial: g.Initial,
		Context: g.Context.Clone(),
		States:  make(map[StateID]StateNode, len(g.States)),
		On:      maps.Clone(g.On),
	}
	for id, node := range g.States {
		out.States[id] = StateNode{On: maps.Clone(node.On)}
	}
	return out
}
