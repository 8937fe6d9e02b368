package memfs

// NodeInfo provides read-only access to node information for external consumers
type NodeInfo interface {
	// Name returns the node's name (last path component)
	Name() string

	// NodeID returns the session-scoped registry identifier; 0 if not registered
	NodeID() uint64

	// UUID returns the node's stable identity
	UUID() string

	// IsFile returns true if the node is a leaf that cannot own children
	IsFile() bool
}

// TreeOperator defines the path-based tree operations that external consumers need
type TreeOperator interface {
	// Create makes the node at path, creating missing intermediate directories
	Create(path string, isFile bool) error

	// Delete removes the node at path together with its entire subtree
	Delete(path string) error

	// ListDirectory returns the immediate child names at path in insertion order
	ListDirectory(path string) ([]string, error)

	// Search returns the absolute paths of every node with the given name
	Search(name string) []string

	// SetPermissions records a free-form permission string for user on the
	// node at path
	SetPermissions(path, user, perm string) error

	// GetPermissions returns the permission string recorded for user on the
	// node at path; ok is false when the user has no entry
	GetPermissions(path, user string) (perm string, ok bool, err error)
}
