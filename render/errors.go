package render

import "fmt"

// This file holds three of the four core-internal error kinds; the fourth,
// ErrUnassignedName, lives in package name. All four are fatal to the
// render pass; there is no partial output recovery.

// ErrUnsupportedTypeShape reports a target hook invoked on a kind it
// declares unsupported. No hook in this tree returns it: ir.NewMap has no
// key type, so a non-string map key never reaches the Ruby target.
type ErrUnsupportedTypeShape struct {
	Kind string
	Why  string
}

func (e *ErrUnsupportedTypeShape) Error() string {
	return fmt.Sprintf("render: unsupported type shape %s: %s", e.Kind, e.Why)
}

// ErrUnresolvableUnion is raised when explicit sum synthesis finds two
// union members whose JSON-level discriminator guards overlap at the
// same depth.
type ErrUnresolvableUnion struct {
	Union string
	Guard string
}

func (e *ErrUnresolvableUnion) Error() string {
	return fmt.Sprintf("render: unresolvable union %s: overlapping guard %s", e.Union, e.Guard)
}

// ErrCycleBeyondNamedBoundary wraps ir.CycleError as it crosses the
// render package boundary, keeping the error taxonomy's naming stable
// regardless of which package actually detected the cycle.
type ErrCycleBeyondNamedBoundary struct {
	Cause error
}

func (e *ErrCycleBeyondNamedBoundary) Error() string {
	return fmt.Sprintf("render: cycle beyond named boundary: %v", e.Cause)
}

func (e *ErrCycleBeyondNamedBoundary) Unwrap() error { return e.Cause }
