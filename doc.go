/*
Package rewind is a replayable state-machine interpreter with time-travel semantics.

A host describes states and the events each state accepts, and rewind executes
events against that graph while recording every step in a causality tree. Any
step can be undone, redone, or rewound to the root; a separate pause slot lets
the host jump back to a saved point without touching the undo history; and
manual overrides bypass the graph while staying in the same auditable history.

# Concept

The core is synchronous and in-memory. Nothing blocks and nothing returns an
error for normal misuse: an event without a transition, an undo at the root or
a resume without a pause are all no-ops that report false. Hosts that need
diagnostics use CanSend, the trileaf facade, or LifecycleHooks.OnRejected.

An Interpreter is not safe for concurrent use. Keep one per owner, or
serialize access (see package session).

# Usage

	graph := &domain.Graph{
		Initial: "idle",
		Context: domain.Context{"counter": 0},
		States: map[string]domain.StateNode{
			"idle":      {On: map[string]string{"START": "cooking"}},
			"cooking":   {On: map[string]string{"TICK": "cooking", "DONE": "completed"}},
			"completed": {},
		},
	}

	machine, err := rewind.CreateMachine(graph)
	if err != nil {
		log.Fatal(err)
	}

	interp := rewind.Interpret(machine)
	interp.Send(domain.Named("START"))
	interp.SendWith(domain.Named("TICK"), func(ctx domain.Context, _ domain.Event) domain.Context {
		ctx["counter"] = ctx["counter"].(int) + 10
		return ctx
	})

	interp.Undo()       // back to cooking(0)
	interp.UndoToRoot() // back to idle
	interp.Redo()       // forward to cooking(0)
*/
package rewind
