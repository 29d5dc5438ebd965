// Package reconcile computes and replays edit scripts between two ordered lists.
//
// Given the previously displayed sequence (old) and the sequence to display
// next (new), Compute returns the Script of insert, remove, move and change
// operations that transforms old into new. Dispatch replays a Script against
// a ListSurface as incremental notifications so a list view can update only
// the affected positions.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Callback: caller-supplied identity and content comparators. Keyed
// callbacks derive identity from a comparable key and enable hashed matching.
//
// 2. Engine: pairs items by identity, finds the longest order-preserving
// subset of the pairs (left untouched) and orders the edits for replay:
// removes, inserts, moves, changes.
//
// 3. Dispatcher: replays a Script 1:1 onto a ListSurface, asserting the
// surface length and single-flight use.
//
// # Positions
//
// Every position is interpreted against the list as it exists immediately
// before that edit is applied, matching incremental list-update semantics.
// A move removes the item at Position and re-inserts it at ToPosition.
//
// # Errors
//
// Ambiguous identity (with WithStrictIdentity), a surface whose length does
// not match the script, and overlapping dispatches are programming errors and
// panic with PreconditionError, DesyncError or ErrConcurrentDispatch. Apply,
// which works on a caller-owned slice, returns the DesyncError instead.
//
// # Usage Example
//
//	script := reconcile.ComputeKeyed(oldDays, newDays,
//	    func(d Day) string { return d.Date },
//	    func(a, b Day) bool { return a.Selected == b.Selected },
//	)
//	reconcile.Dispatch(view, script)
package reconcile
