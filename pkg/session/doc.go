/*
Package session keeps many interpreters behind one registry.

The interpreter core does no locking. Manager gives every session its own
mutex and runs each operation under it, so HTTP handlers or other concurrent
hosts can share a registry safely. Sessions live in memory only; nothing
survives a restart.
*/
package session
