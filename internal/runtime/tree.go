package runtime

import "github.com/aretw0/rewind/pkg/domain"

// Tree is the mutable history store of an interpreter.
//
// head is the current node. past holds previously-current nodes (most recent
// last) and future holds undone nodes (most recent last). paused is a side
// slot that never touches either stack.
//
// Tree is not safe for concurrent use.
type Tree struct {
	root   *domain.Node
	head   *domain.Node
	past   []*domain.Node
	future []*domain.Node
	paused *domain.Node
}

// NewTree seeds a tree with its root node.
func NewTree(root *domain.Node) *Tree {
	return &Tree{root: root, head: root}
}

// Current returns the node that is "now".
func (t *Tree) Current() *domain.Node { return t.head }

// Root returns the first node of the tree.
func (t *Tree) Root() *domain.Node { return t.root }

// Write commits node as the new head. The redo stack is discarded.
func (t *Tree) Write(node *domain.Node) {
	clear(t.future)
	t.future = t.future[:0]
	t.past = append(t.past, t.head)
	t.head = node
}

// Undo moves the head one step back. It reports whether anything happened.
func (t *Tree) Undo() bool {
	if len(t.past) == 0 {
		return false
	}
	t.future = append(t.future, t.head)
	t.head = pop(&t.past)
	return true
}

// UndoToRoot undoes until the past is empty. It reports whether at least one
// step was taken.
func (t *Tree) UndoToRoot() bool {
	if len(t.past) == 0 {
		return false
	}
	// Equivalent to repeated Undo: every popped head lands on the redo stack
	// in the same order.
	for i := len(t.past) - 1; i >= 0; i-- {
		t.future = append(t.future, t.head)
		t.head = t.past[i]
		t.past[i] = nil
	}
	t.past = t.past[:0]
	return true
}

// Redo re-applies the most recently undone node.
func (t *Tree) Redo() bool {
	if len(t.future) == 0 {
		return false
	}
	t.past = append(t.past, t.head)
	t.head = pop(&t.future)
	return true
}

// Pause stores the current head in the paused slot. Last pause wins.
func (t *Tree) Pause() {
	t.paused = t.head
}

// Resume jumps back to the paused node and clears the slot.
// The pre-resume head is not pushed onto the past: resume is not an
// undoable write.
func (t *Tree) Resume() bool {
	if t.paused == nil {
		return false
	}
	t.head = t.paused
	t.paused = nil
	return true
}

// ClearPaused discards the paused node without restoring it.
func (t *Tree) ClearPaused() {
	t.paused = nil
}

// CanUndo reports whether there is a node to step back to.
func (t *Tree) CanUndo() bool { return len(t.past) > 0 }

// CanRedo reports whether an undone node can be restored.
func (t *Tree) CanRedo() bool { return len(t.future) > 0 }

// IsPaused reports whether a node is held in the pause slot.
func (t *Tree) IsPaused() bool { return t.paused != nil }

// Paused returns the paused node, or nil.
func (t *Tree) Paused() *domain.Node { return t.paused }

// PastLen is the number of steps Undo can take.
func (t *Tree) PastLen() int { return len(t.past) }

// FutureLen is the number of steps Redo can take.
func (t *Tree) FutureLen() int { return len(t.future) }

func pop(stack *[]*domain.Node) *domain.Node {
	s := *stack
	n := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return n
}
