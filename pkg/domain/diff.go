package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	Value *StateID `json:"value,omitempty"`

	// Context contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Context map[string]any `json:"context,omitempty"`

	// Event is set when the causing event differs.
	Event *Event `json:"event,omitempty"`
}

// Diff calculates the difference between two snapshots.
// If old is nil, the diff describes the whole of new (initial load).
// It returns nil when nothing changed.
func Diff(old, new *Snapshot) *SnapshotDiff {
	if new == nil {
		return nil
	}

	diff := &SnapshotDiff{}

	if old == nil || old.Value != new.Value {
		diff.Value = &new.Value
	}
	if old == nil || !sameEvent(old.Event, new.Event) {
		if !new.Event.IsZero() || old != nil {
			ev := new.Event
			diff.Event = &ev
		}
	}

	diff.Context = diffContext(old, new)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func sameEvent(a, b Event) bool {
	return a.kind == b.kind && a.typ == b.typ && reflect.DeepEqual(a.payload, b.payload)
}

func diffContext(old *Snapshot, new *Snapshot) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Context {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	// Added or modified
	for k, newVal := range new.Context {
		oldVal, exists := old.Context[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Deleted
	for k := range old.Context {
		if _, exists := new.Context[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Value == nil &&
		d.Event == nil &&
		len(d.Context) == 0
}
