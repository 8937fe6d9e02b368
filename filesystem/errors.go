package filesystem

import "github.com/pkg/errors"

// Error kinds returned by node and tree operations. Wrapped values carry
// path/name context; callers discriminate with errors.Is.
var (
	// ErrInvalidOperation marks structural misuse, such as adding a child
	// to a file or creating a path through one.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAlreadyExists marks a duplicate child name within one parent.
	ErrAlreadyExists = errors.New("already exists")

	// ErrTypeConflict marks a create whose terminal segment exists with
	// the other file/directory type.
	ErrTypeConflict = errors.New("type conflict")

	// ErrNotFound marks a path, parent, or child that does not resolve.
	ErrNotFound = errors.New("not found")
)
