package domain

// Snapshot is the read-only view of an interpreter's current node.
type Snapshot struct {
	Value   StateID `json:"value"`
	Context Context `json:"context"`
	Event   Event   `json:"event"`
	// Done is never set by the interpreter. Hosts derive completion from
	// Graph.IsTerminal on the snapshot value.
	Done bool `json:"done"`
}

// SnapshotOf builds the view for a node. The context is cloned so callers
// can't reach into history.
func SnapshotOf(n *Node) Snapshot {
	if n == nil {
		return Snapshot{}
	}
	return Snapshot{
		Value:   n.Value,
		Context: n.Context.Clone(),
		Event:   n.Event,
	}
}
