package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/pkg/domain"
)

// Loader implements ports.GraphLoader by reading a YAML or JSON document
// from the local filesystem on every Load.
type Loader struct {
	Path   string
	parser *compiler.Parser
}

// NewLoader creates a loader for path.
func NewLoader(path string, opts ...compiler.ParserOption) *Loader {
	return &Loader{
		Path:   path,
		parser: compiler.NewParser(opts...),
	}
}

// Load reads and parses the document.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", l.Path, err)
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	graph, err := l.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(l.Path), err)
	}

	// Fall back to the file name so diagrams and logs have a label.
	if graph.ID == "" {
		base := filepath.Base(l.Path)
		graph.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	return graph, nil
}

// Source returns the file path.
func (l *Loader) Source() string { return l.Path }
