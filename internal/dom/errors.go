package dom

import "errors"

var (
	// ErrHierarchy is returned when an operation would create a cycle in
	// the node tree.
	ErrHierarchy = errors.New("node hierarchy violation")

	// ErrNilNode is returned when a nil node is passed where one is required.
	ErrNilNode = errors.New("node cannot be nil")
)
