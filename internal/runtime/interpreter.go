package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
)

// Status is the lifecycle stage of an Interpreter.
type Status int

const (
	StatusCreated Status = iota
	StatusStarted
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusStarted:
		return "started"
	case StatusStopped:
		return "stopped"
	default:
		return "created"
	}
}

// UpdateFunc is re-exported for callers of this package.
type UpdateFunc = domain.UpdateFunc

// Interpreter executes events against a graph and records every step in a Tree.
//
// Only a started interpreter mutates. Every mutator on a created or stopped
// interpreter is a no-op that reports false.
//
// Interpreter is not safe for concurrent use; hosts serialize access.
type Interpreter struct {
	graph  *domain.Graph
	tree   *Tree
	status Status
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Interpreter) {
		i.hooks = i.hooks.Merge(hooks)
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		if now != nil {
			i.now = now
		}
	}
}

// NewInterpreter creates an interpreter whose tree is seeded with the root
// node built from graph.Initial and graph.Context. The graph is held by
// reference and never written.
func NewInterpreter(graph *domain.Graph, opts ...Option) *Interpreter {
	i := &Interpreter{
		graph:  graph,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	if graph.ID != "" {
		i.logger = i.logger.With("machine", graph.ID)
	}

	i.tree = NewTree(&domain.Node{
		Value:     graph.Initial,
		Context:   graph.Context.Clone(),
		Timestamp: i.now(),
	})
	return i
}

// Start moves a created interpreter to started. It reports false otherwise.
func (i *Interpreter) Start() bool {
	if i.status != StatusCreated {
		return false
	}
	i.status = StatusStarted
	i.logger.Debug("interpreter started", "state", i.tree.Current().Value)
	return true
}

// Stop is terminal. Further mutators become no-ops.
func (i *Interpreter) Stop() bool {
	if i.status == StatusStopped {
		return false
	}
	i.status = StatusStopped
	i.logger.Debug("interpreter stopped", "state", i.tree.Current().Value)
	i.fire(i.hooks.OnStop, domain.HookStop, i.tree.Current(), i.tree.Current())
	return true
}

// Status returns the lifecycle stage.
func (i *Interpreter) Status() Status { return i.status }

func (i *Interpreter) active() bool { return i.status == StatusStarted }

// Graph returns the graph the interpreter runs. Callers must not modify it.
func (i *Interpreter) Graph() *domain.Graph { return i.graph }

// Send resolves event from the current state and, if a transition exists,
// commits a node carrying the unchanged context.
func (i *Interpreter) Send(event domain.Event) bool {
	return i.SendWith(event, nil)
}

// SendWith behaves like Send, computing the new context with update.
// update only runs when a transition exists.
func (i *Interpreter) SendWith(event domain.Event, update UpdateFunc) bool {
	if !i.active() {
		return false
	}

	head := i.tree.Current()
	target, ok := i.graph.Resolve(head.Value, event)
	if !ok {
		i.logger.Debug("event rejected", "state", head.Value, "event", event.Key())
		if i.hooks.OnRejected != nil {
			i.hooks.OnRejected(&domain.RejectedEvent{
				Timestamp: i.now(),
				Type:      domain.HookRejected,
				MachineID: i.graph.ID,
				State:     head.Value,
				Event:     event,
			})
		}
		return false
	}

	ctx := head.Context
	if update != nil {
		ctx = update(head.Context.Clone(), event)
	}

	i.commit(target, ctx, event)
	return true
}

// SetState forces the machine into target without consulting the graph.
// The node is recorded with the override marker so it stays auditable and
// undoable. An optional context replaces the current one.
func (i *Interpreter) SetState(target domain.StateID, ctx ...domain.Context) bool {
	if !i.active() {
		return false
	}

	next := i.tree.Current().Context
	if len(ctx) > 0 && ctx[0] != nil {
		next = ctx[0].Clone()
	}

	i.commit(target, next, domain.Override())
	return true
}

func (i *Interpreter) commit(target domain.StateID, ctx domain.Context, event domain.Event) {
	head := i.tree.Current()
	node := &domain.Node{
		Value:     target,
		Context:   ctx,
		Event:     event,
		Timestamp: i.now(),
		Parent:    head,
	}
	i.tree.Write(node)

	i.logger.Debug("transition committed",
		"from", head.Value,
		"to", target,
		"event", event.Key(),
		"override", event.IsOverride(),
	)
	i.fire(i.hooks.OnCommit, domain.HookCommit, head, node)
}

// Undo steps back one node.
func (i *Interpreter) Undo() bool {
	return i.move(i.tree.Undo, i.hooks.OnUndo, domain.HookUndo)
}

// Redo steps forward one node.
func (i *Interpreter) Redo() bool {
	return i.move(i.tree.Redo, i.hooks.OnRedo, domain.HookRedo)
}

// UndoToRoot rewinds to the root node.
func (i *Interpreter) UndoToRoot() bool {
	return i.move(i.tree.UndoToRoot, i.hooks.OnUndo, domain.HookUndo)
}

// Backward is UndoToRoot: the single backward action shared by every branch.
func (i *Interpreter) Backward() bool {
	return i.UndoToRoot()
}

// Resume jumps back to the paused node.
func (i *Interpreter) Resume() bool {
	return i.move(i.tree.Resume, i.hooks.OnResume, domain.HookResume)
}

func (i *Interpreter) move(op func() bool, hook func(*domain.HistoryEvent), typ domain.HookType) bool {
	if !i.active() {
		return false
	}
	from := i.tree.Current()
	if !op() {
		return false
	}
	to := i.tree.Current()
	i.logger.Debug("history moved", "op", string(typ), "from", from.Value, "to", to.Value)
	i.fire(hook, typ, from, to)
	return true
}

// Pause saves the current node in the paused slot, overwriting any earlier one.
func (i *Interpreter) Pause() bool {
	if !i.active() {
		return false
	}
	i.tree.Pause()
	cur := i.tree.Current()
	i.logger.Debug("paused", "state", cur.Value)
	i.fire(i.hooks.OnPause, domain.HookPause, cur, cur)
	return true
}

// ClearPaused drops the paused node without restoring it.
func (i *Interpreter) ClearPaused() bool {
	if !i.active() || !i.tree.IsPaused() {
		return false
	}
	i.tree.ClearPaused()
	return true
}

func (i *Interpreter) fire(hook func(*domain.HistoryEvent), typ domain.HookType, from, to *domain.Node) {
	if hook == nil {
		return
	}
	hook(&domain.HistoryEvent{
		Timestamp: i.now(),
		Type:      typ,
		MachineID: i.graph.ID,
		From:      from,
		To:        to,
	})
}

// CanUndo reports whether Undo would move the head.
func (i *Interpreter) CanUndo() bool { return i.tree.CanUndo() }

// CanRedo reports whether Redo would move the head.
func (i *Interpreter) CanRedo() bool { return i.tree.CanRedo() }

// IsPaused reports whether a paused node is remembered.
func (i *Interpreter) IsPaused() bool { return i.tree.IsPaused() }

// Snapshot returns a read-only view of the current node.
func (i *Interpreter) Snapshot() domain.Snapshot {
	return domain.SnapshotOf(i.tree.Current())
}

// Value is the current state identifier.
func (i *Interpreter) Value() domain.StateID { return i.tree.Current().Value }

// Context returns a copy of the current context.
func (i *Interpreter) Context() domain.Context { return i.tree.Current().Context.Clone() }

// Current returns the current node.
func (i *Interpreter) Current() *domain.Node { return i.tree.Current() }

// Root returns the first node.
func (i *Interpreter) Root() *domain.Node { return i.tree.Root() }

// Paused returns the paused node, or nil.
func (i *Interpreter) Paused() *domain.Node { return i.tree.Paused() }

// EnabledEvents lists the events the current state accepts.
func (i *Interpreter) EnabledEvents() []string {
	return i.graph.EnabledEvents(i.tree.Current().Value)
}

// CanSend reports whether event would trigger a transition right now.
func (i *Interpreter) CanSend(event domain.Event) bool {
	if !i.active() {
		return false
	}
	_, ok := i.graph.Resolve(i.tree.Current().Value, event)
	return ok
}

// History returns the undo depth and redo depth.
func (i *Interpreter) History() (past, future int) {
	return i.tree.PastLen(), i.tree.FutureLen()
}
