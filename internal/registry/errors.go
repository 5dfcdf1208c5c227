package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when adding to a full registry.
	ErrCapacityExceeded = errors.New("registry is full")

	// ErrNotFound is returned when no member has the requested name.
	ErrNotFound = errors.New("animal not found")

	// ErrInvalidArgument is returned for nil, released or duplicate members
	// and for malformed constructor arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKindMismatch is returned when an enclosure restricted to one kind
	// is offered another. It wraps ErrInvalidArgument.
	ErrKindMismatch = fmt.Errorf("%w: kind mismatch", ErrInvalidArgument)

	// ErrStaleRef is returned when resolving a ref whose member was removed
	// or whose registry was closed.
	ErrStaleRef = errors.New("stale reference")

	// ErrIO is returned when a dump file cannot be opened, read or written.
	ErrIO = errors.New("i/o error")

	// ErrMalformedDump is returned when a dump does not follow the format.
	ErrMalformedDump = errors.New("malformed dump")
)
