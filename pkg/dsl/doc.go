/*
Package dsl provides a Go DSL for programmatically constructing rewind transition graphs.

It is the typed alternative to YAML/JSON documents: useful for tests, embedded
machines and graphs generated at runtime.

Example usage:

	b := dsl.New("kitchen").Initial("idle").Context("counter", 0)

	b.Add("idle").On("START", "cooking")
	b.Add("cooking").
		On("TICK", "cooking").
		On("DONE", "completed")
	b.Add("completed").Terminal()

	// Root-level transitions apply to every state that does not handle the event.
	b.On("RESET", "idle")

	loader, err := b.Build() // a memory loader, usable with rewind.LoadMachine
	machine, err := b.Machine()
*/
package dsl
