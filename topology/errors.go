package topology

import "errors"

// Sentinel errors for topology construction and lookup.
var (
	// ErrNodeNotFound indicates an operation referenced a node absent from
	// the graph.
	ErrNodeNotFound = errors.New("topology: node not found")

	// ErrLinkNotFound indicates no link exists between the given endpoints.
	ErrLinkNotFound = errors.New("topology: link not found")

	// ErrInvalidCapacity indicates a negative link capacity was supplied.
	ErrInvalidCapacity = errors.New("topology: link capacity must be >= 0")

	// ErrInvalidInput indicates a malformed topology record; the loader returns it for a negative capacity.
	ErrInvalidInput = errors.New("topology: invalid input record")
)
