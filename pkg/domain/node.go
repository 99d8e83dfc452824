package domain

import (
	"maps"
	"time"
)

// StateID identifies a state in a transition graph.
type StateID = string

// Context holds the domain data carried by a history node.
// A node's context is never edited in place; a transition produces a fresh map.
type Context map[string]any

// Clone returns a shallow copy of the context. Nested values are shared.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// UpdateFunc computes the context of the next node from the current context
// and the event being applied. It receives a private copy and must be pure.
type UpdateFunc func(ctx Context, event Event) Context

// Node is one immutable point in an interpreter's history.
//
// Fields are exported for read access. Consumers MUST NOT modify a Node (or its
// Context) after it has been committed; the undo/redo stacks share them by pointer.
type Node struct {
	Value     StateID   `json:"value"`
	Context   Context   `json:"context"`
	Event     Event     `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Parent    *Node     `json:"-"`
}

// IsRoot reports whether the node is the first one created for its interpreter.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsOverride reports whether the node was reached through a manual transition.
func (n *Node) IsOverride() bool {
	return n.Event.IsOverride()
}

// Depth counts the parent hops between the node and its root.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Lineage returns the chain of nodes from the root down to n (inclusive).
func (n *Node) Lineage() []*Node {
	chain := make([]*Node, n.Depth()+1)
	for i, cur := len(chain)-1, n; cur != nil; i, cur = i-1, cur.Parent {
		chain[i] = cur
	}
	return chain
}
