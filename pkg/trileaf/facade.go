package trileaf

import "github.com/aretw0/rewind/pkg/domain"

// Interpreter is the subset of the interpreter API the facade drives.
type Interpreter interface {
	Send(event domain.Event) bool
	SendWith(event domain.Event, update domain.UpdateFunc) bool
	SetState(target domain.StateID, ctx ...domain.Context) bool
	UndoToRoot() bool
	Pause() bool
	CanUndo() bool
	IsPaused() bool
	CanSend(event domain.Event) bool
	Current() *domain.Node
	Root() *domain.Node
	Graph() *domain.Graph
}

// Branch is one event reachable from the current state, with its three leaves.
type Branch struct {
	Event    string `json:"event"`
	Override bool   `json:"override,omitempty"`
	Forward  bool   `json:"forward"`
	Pause    bool   `json:"pause"`
	Backward bool   `json:"backward"`
}

// VisualData is a read-only export of "what can happen from here".
type VisualData struct {
	RootValue     domain.StateID `json:"root_value"`
	CurrentValue  domain.StateID `json:"current_value"`
	EnabledEvents []string       `json:"enabled_events"`
	AtRoot        bool           `json:"at_root"`
	Paused        bool           `json:"paused"`
	Branches      []Branch       `json:"branches"`
}

// Facade wraps an interpreter without adding state.
type Facade struct {
	interp Interpreter
}

// New creates a facade over interp.
func New(interp Interpreter) *Facade {
	return &Facade{interp: interp}
}

// EnabledEvents lists the graph events accepted by the current state.
func (f *Facade) EnabledEvents() []string {
	return f.interp.Graph().EnabledEvents(f.interp.Current().Value)
}

// BranchEvents returns the enabled events followed by the override marker.
func (f *Facade) BranchEvents() []domain.Event {
	keys := f.EnabledEvents()
	events := make([]domain.Event, 0, len(keys)+1)
	for _, key := range keys {
		events = append(events, domain.Named(key))
	}
	return append(events, domain.Override())
}

// CanForward reports whether event would move the machine. An override is
// always possible.
func (f *Facade) CanForward(event domain.Event) bool {
	if event.IsOverride() {
		return true
	}
	return f.interp.CanSend(event)
}

// CanPause is always true: pausing again overwrites the previous snapshot.
func (f *Facade) CanPause() bool { return true }

// CanBackward is the same for every branch: is there anything to undo.
func (f *Facade) CanBackward() bool { return f.interp.CanUndo() }

// Branches reports the leaves of every branch.
func (f *Facade) Branches() []Branch {
	backward := f.CanBackward()
	events := f.BranchEvents()
	out := make([]Branch, 0, len(events))
	for _, ev := range events {
		out = append(out, Branch{
			Event:    ev.Key(),
			Override: ev.IsOverride(),
			Forward:  f.CanForward(ev),
			Pause:    f.CanPause(),
			Backward: backward,
		})
	}
	return out
}

// Forward sends event.
func (f *Facade) Forward(event domain.Event) bool {
	return f.interp.Send(event)
}

// ForwardWith sends event with a context update.
func (f *Facade) ForwardWith(event domain.Event, update domain.UpdateFunc) bool {
	return f.interp.SendWith(event, update)
}

// ForwardOverride performs a manual transition to target.
func (f *Facade) ForwardOverride(target domain.StateID, ctx ...domain.Context) bool {
	return f.interp.SetState(target, ctx...)
}

// Pause saves the current node. The event only mirrors Forward/Backward; there
// is one pause slot regardless of branch.
func (f *Facade) Pause(_ domain.Event) bool {
	return f.interp.Pause()
}

// Backward rewinds to the root regardless of event.
func (f *Facade) Backward(_ domain.Event) bool {
	return f.interp.UndoToRoot()
}

// VisualData exports the current branch picture. It never mutates the interpreter.
func (f *Facade) VisualData() VisualData {
	cur := f.interp.Current()
	return VisualData{
		RootValue:     f.interp.Root().Value,
		CurrentValue:  cur.Value,
		EnabledEvents: f.EnabledEvents(),
		AtRoot:        cur.IsRoot(),
		Paused:        f.interp.IsPaused(),
		Branches:      f.Branches(),
	}
}
