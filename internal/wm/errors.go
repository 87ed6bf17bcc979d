package wm

import "errors"

// ErrWindowNotFound is returned when an operation references a window id
// that does not exist or was already closed.
var ErrWindowNotFound = errors.New("window not found")

// ErrWorkspaceNotFound is returned when an operation references an unknown
// workspace id.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrInvalidState is returned when an operation is not legal in the current
// state, e.g. focusing a minimized window or deleting the last workspace.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidSize is returned when a requested geometry violates the
// min/max size constraints irreconcilably.
var ErrInvalidSize = errors.New("invalid size")
