package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// OverrideKey is the comparison key reported for override events.
// Graph configurations must not declare it.
const OverrideKey = "$override"

// EventKind distinguishes the variants an Event can take.
type EventKind uint8

const (
	// EventNone is the zero value, carried by the root node.
	EventNone EventKind = iota
	// EventNamed is a bare event identified only by its type.
	EventNamed
	// EventStructured is an event type plus a payload.
	EventStructured
	// EventOverride marks a manual transition performed outside the graph.
	EventOverride
)

func (k EventKind) String() string {
	switch k {
	case EventNamed:
		return "named"
	case EventStructured:
		return "structured"
	case EventOverride:
		return "override"
	default:
		return "none"
	}
}

// Event is the input fed to an interpreter.
// Values are immutable once built; use the constructors below.
type Event struct {
	kind    EventKind
	typ     string
	payload map[string]any
}

// Named creates a bare event.
func Named(eventType string) Event {
	return Event{kind: EventNamed, typ: eventType}
}

// WithPayload creates an event carrying a payload next to its type.
func WithPayload(eventType string, payload map[string]any) Event {
	return Event{kind: EventStructured, typ: eventType, payload: maps.Clone(payload)}
}

// Override returns the override marker event.
func Override() Event {
	return Event{kind: EventOverride, typ: OverrideKey}
}

// Kind reports which variant the event is.
func (e Event) Kind() EventKind { return e.kind }

// Key normalizes the event into the key used for transition lookup.
func (e Event) Key() string {
	switch e.kind {
	case EventNamed, EventStructured:
		return e.typ
	case EventOverride:
		return OverrideKey
	default:
		return ""
	}
}

// Payload returns a copy of the event payload (nil for bare events).
func (e Event) Payload() map[string]any {
	return maps.Clone(e.payload)
}

// IsZero is true for the event carried by a root node.
func (e Event) IsZero() bool { return e.kind == EventNone }

// IsOverride is true for the override marker.
func (e Event) IsOverride() bool { return e.kind == EventOverride }

func (e Event) String() string {
	if e.kind == EventNone {
		return "<none>"
	}
	return e.Key()
}

// eventJSON is the wire shape used by hosts (HTTP bodies, history dumps).
type eventJSON struct {
	Type    string         `json:"type"`
	Kind    string         `json:"kind,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.kind == EventNone {
		return []byte("null"), nil
	}
	return json.Marshal(eventJSON{Type: e.Key(), Kind: e.kind.String(), Payload: e.payload})
}

// UnmarshalJSON implements json.Unmarshaler.
// A bare JSON string decodes to a named event.
func (e *Event) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Event{}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*e = Named(name)
		return nil
	}
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	switch {
	case raw.Kind == EventOverride.String():
		*e = Override()
	case raw.Type == "":
		return fmt.Errorf("invalid event: missing type")
	case len(raw.Payload) > 0:
		*e = WithPayload(raw.Type, raw.Payload)
	default:
		*e = Named(raw.Type)
	}
	return nil
}
