package domain

import "time"

// HookType defines the category of a lifecycle notification.
type HookType string

const (
	HookCommit   HookType = "commit"
	HookUndo     HookType = "undo"
	HookRedo     HookType = "redo"
	HookPause    HookType = "pause"
	HookResume   HookType = "resume"
	HookRejected HookType = "rejected"
	HookStop     HookType = "stop"
)

// HistoryEvent describes a change of the current node.
type HistoryEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      HookType  `json:"type"`
	MachineID string    `json:"machine_id,omitempty"`
	From      *Node     `json:"-"`
	To        *Node     `json:"-"`
}

// RejectedEvent describes a send that found no transition.
type RejectedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      HookType  `json:"type"`
	MachineID string    `json:"machine_id,omitempty"`
	State     StateID   `json:"state"`
	Event     Event     `json:"event"`
}

// LifecycleHooks defines callbacks for interpreter observability.
// Hooks run synchronously on the caller's goroutine and must not call back
// into the interpreter.
type LifecycleHooks struct {
	OnCommit   func(*HistoryEvent)
	OnUndo     func(*HistoryEvent)
	OnRedo     func(*HistoryEvent)
	OnPause    func(*HistoryEvent)
	OnResume   func(*HistoryEvent)
	OnStop     func(*HistoryEvent)
	OnRejected func(*RejectedEvent)
}

// Merge combines hooks so that both sets fire, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommit:   chain(h.OnCommit, other.OnCommit),
		OnUndo:     chain(h.OnUndo, other.OnUndo),
		OnRedo:     chain(h.OnRedo, other.OnRedo),
		OnPause:    chain(h.OnPause, other.OnPause),
		OnResume:   chain(h.OnResume, other.OnResume),
		OnStop:     chain(h.OnStop, other.OnStop),
		OnRejected: chain(h.OnRejected, other.OnRejected),
	}
}

func chain[T any](a, b func(T)) func(T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(v T) {
		a(v)
		b(v)
	}
}
