package ports

import (
	"context"

	"github.com/aretw0/rewind/pkg/domain"
)

// GraphLoader defines how a host retrieves a transition graph.
// This allows the source (file, memory, embedded asset) to be decoupled.
type GraphLoader interface {
	// Load returns a fresh copy of the graph. Callers may keep and freeze it.
	Load(ctx context.Context) (*domain.Graph, error)

	// Source is a human-readable label for logs and error messages.
	Source() string
}
