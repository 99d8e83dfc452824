package dto

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// GraphConfig is the host-facing shape of a transition graph document.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type GraphConfig struct {
	ID      string                      `json:"id" mapstructure:"id"`
	Initial string                      `json:"initial" mapstructure:"initial"`
	Context map[string]any              `json:"context" mapstructure:"context"`
	States  map[string]StateConfig      `json:"states" mapstructure:"states"`
	On      map[string]TransitionConfig `json:"on" mapstructure:"on"`
}

// StateConfig lists the events one state handles.
type StateConfig struct {
	On map[string]TransitionConfig `json:"on" mapstructure:"on"`
}

// TransitionConfig accepts both `EVENT: target` and `EVENT: {target: x}`.
// "to" is kept as an alias of "target".
type TransitionConfig struct {
	Target string `json:"target" mapstructure:"target"`
	To     string `json:"to" mapstructure:"to"`
}

// Resolved returns the effective target.
func (t TransitionConfig) Resolved() string {
	if t.Target != "" {
		return t.Target
	}
	return t.To
}

// Graph converts the document into the domain model.
func (c *GraphConfig) Graph() *domain.Graph {
	g := &domain.Graph{
		ID:      c.ID,
		Initial: c.Initial,
		Context: domain.Context(c.Context).Clone(),
		States:  make(map[domain.StateID]domain.StateNode, len(c.States)),
		On:      transitions(c.On),
	}
	for id, state := range c.States {
		g.States[id] = domain.StateNode{On: transitions(state.On)}
	}
	return g
}

func transitions(in map[string]TransitionConfig) map[string]domain.StateID {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]domain.StateID, len(in))
	for event, t := range in {
		out[event] = t.Resolved()
	}
	return out
}
