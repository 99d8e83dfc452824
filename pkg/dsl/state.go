package dsl

import (
	"maps"

	"github.com/aretw0/rewind/pkg/domain"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id      string
	on      map[string]domain.StateID
	builder *Builder
}

// On adds a transition handled locally by this state.
func (s *StateBuilder) On(event string, target string) *StateBuilder {
	if s.on == nil {
		s.on = make(map[string]domain.StateID)
	}
	s.on[event] = target
	return s
}

// Self adds a transition that stays in this state (useful with context updates).
func (s *StateBuilder) Self(event string) *StateBuilder {
	return s.On(event, s.id)
}

// Terminal marks the state as final by dropping its local transitions.
// Root-level transitions still apply.
func (s *StateBuilder) Terminal() *StateBuilder {
	s.on = nil
	return s
}

// Initial makes this state the initial one.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.Initial(s.id)
	return s
}

// And returns the parent builder to keep chaining.
func (s *StateBuilder) And() *Builder {
	return s.builder
}

func (s *StateBuilder) build() domain.StateNode {
	return domain.StateNode{On: maps.Clone(s.on)}
}
