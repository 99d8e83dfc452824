package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
)

// Loader implements ports.GraphLoader over a graph held in memory.
type Loader struct {
	graph *domain.Graph
	label string
}

// NewLoader keeps a private copy of graph.
func NewLoader(graph *domain.Graph) *Loader {
	label := "memory"
	if graph.ID != "" {
		label = "memory:" + graph.ID
	}
	return &Loader{graph: graph.Clone(), label: label}
}

// Load returns a copy of the stored graph.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", l.label, err)
	}
	return l.graph.Clone(), nil
}

// Source returns the loader label.
func (l *Loader) Source() string { return l.label }
