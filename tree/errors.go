package tree

import "errors"

// ErrEmptyPosition is returned when an operation that requires an occupied
// node is attempted at an empty position.
var ErrEmptyPosition = errors.New("tree: position is empty")

// ErrOccupiedPosition is returned by InsertAtEmpty when the target position
// already holds a node.
var ErrOccupiedPosition = errors.New("tree: position is already occupied")

// ErrAtRoot is returned by GoUp when the walker is already at the root and
// has no parent frame to return to.
var ErrAtRoot = errors.New("tree: walker is already at the root")
