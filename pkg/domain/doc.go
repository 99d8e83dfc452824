/*
Package domain contains the core models of the rewind interpreter.

Everything here is pure: no I/O, no locking, no persistence.

# Key Entities

  - Event: the input to a machine. A named event, a structured event with a payload, or the override marker.
  - Graph: the declarative transition graph (state-local and root-level event maps).
  - Node: one immutable point in history (state value, context, causing event, parent).
  - Snapshot: the read-only view a host receives for the current node.
  - LifecycleHooks: synchronous callbacks fired by the interpreter.
*/
package domain
