package rewind

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/runtime"
	"github.com/aretw0/rewind/internal/validator"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Machine pairs a validated transition graph with nothing else. It holds no
// mutable state and may back any number of interpreters.
type Machine struct {
	graph    *domain.Graph
	warnings []string
}

// CreateMachine validates graph and freezes a private copy of it.
func CreateMachine(graph *domain.Graph) (*Machine, error) {
	if graph == nil {
		return nil, fmt.Errorf("%w: nil graph", domain.ErrInvalidGraph)
	}
	report := validator.ValidateGraph(graph)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &Machine{graph: graph.Clone(), warnings: report.Warnings}, nil
}

// LoadMachine builds a machine from any graph source.
func LoadMachine(ctx context.Context, loader ports.GraphLoader) (*Machine, error) {
	graph, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph from %s: %w", loader.Source(), err)
	}
	return CreateMachine(graph)
}

// ID returns the graph identifier (may be empty).
func (m *Machine) ID() string { return m.graph.ID }

// Graph returns the frozen graph. Callers must not modify it.
func (m *Machine) Graph() *domain.Graph { return m.graph }

// Warnings lists non-fatal validation findings such as unreachable states.
func (m *Machine) Warnings() []string { return m.warnings }

// Option defines a functional option for configuring an Interpreter.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	clock     func() time.Time
	autoStart bool
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithClock overrides the timestamp source of history nodes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithoutAutoStart leaves the interpreter in the created stage; call Start.
func WithoutAutoStart() Option {
	return func(o *options) {
		o.autoStart = false
	}
}

// UpdateFunc computes the next context from a private copy of the current one.
type UpdateFunc = domain.UpdateFunc

// Status is the lifecycle stage of an Interpreter.
type Status = runtime.Status

const (
	StatusCreated = runtime.StatusCreated
	StatusStarted = runtime.StatusStarted
	StatusStopped = runtime.StatusStopped
)

// Interpreter is the stateful service running one machine. It owns a single
// causality tree. It is not safe for concurrent use: serialize calls, or keep
// one interpreter per owner.
type Interpreter struct {
	*runtime.Interpreter
	machine *Machine
}

// Interpret creates an interpreter seeded at the graph's initial state and
// starts it.
func Interpret(m *Machine, opts ...Option) *Interpreter {
	o := &options{autoStart: true, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	rt := runtime.NewInterpreter(m.graph,
		runtime.WithLogger(o.logger),
		runtime.WithLifecycleHooks(o.hooks),
		runtime.WithClock(o.clock),
	)
	if o.autoStart {
		rt.Start()
	}
	return &Interpreter{Interpreter: rt, machine: m}
}

// Machine returns the definition the interpreter runs.
func (i *Interpreter) Machine() *Machine { return i.machine }

// Done reports whether the current state accepts no further events.
func (i *Interpreter) Done() bool {
	return i.machine.graph.IsTerminal(i.Value())
}
