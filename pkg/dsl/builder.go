package dsl

import (
	"fmt"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	graph  *domain.Graph
	states map[string]*StateBuilder
	order  []string
}

// New creates a new graph builder.
func New(id string) *Builder {
	return &Builder{
		graph: &domain.Graph{
			ID:     id,
			States: make(map[domain.StateID]domain.StateNode),
		},
		states: make(map[string]*StateBuilder),
	}
}

// Initial sets the initial state. If never called, the first added state is used.
func (b *Builder) Initial(id string) *Builder {
	b.graph.Initial = id
	return b
}

// Context sets one key of the initial context.
func (b *Builder) Context(key string, value any) *Builder {
	if b.graph.Context == nil {
		b.graph.Context = make(domain.Context)
	}
	b.graph.Context[key] = value
	return b
}

// On adds a root-level transition.
func (b *Builder) On(event string, target string) *Builder {
	if b.graph.On == nil {
		b.graph.On = make(map[string]domain.StateID)
	}
	b.graph.On[event] = target
	return b
}

// Add creates a new state in the graph.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Graph assembles the graph without validating it.
func (b *Builder) Graph() *domain.Graph {
	g := b.graph.Clone()
	if g.Initial == "" && len(b.order) > 0 {
		g.Initial = b.order[0]
	}
	for _, id := range b.order {
		g.States[id] = b.states[id].build()
	}
	return g
}

// Build compiles the graph into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	m, err := b.Machine()
	if err != nil {
		return nil, err
	}
	return memory.NewLoader(m.Graph()), nil
}

// Machine validates the graph and creates a machine definition from it.
func (b *Builder) Machine() (*rewind.Machine, error) {
	m, err := rewind.CreateMachine(b.Graph())
	if err != nil {
		return nil, fmt.Errorf("failed to build graph %q: %w", b.graph.ID, err)
	}
	return m, nil
}
