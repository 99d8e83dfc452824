/*
Package trileaf exposes an interpreter as a set of event branches for diagrams and UIs.

For the current state, every enabled event plus the override marker is a
branch, and every branch has three leaves: forward, pause and backward.
Forward depends on the branch; pause and backward do not, because there is a
single pause slot and a single history shared by all branches. Backward always
means "rewind to the root".

The facade holds no state of its own. Several facades may observe the same
interpreter from one goroutine.
*/
package trileaf
