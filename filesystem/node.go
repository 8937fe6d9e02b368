package filesystem

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Node is a single entry in the tree: a directory owning named children or a
// file leaf. Child names are unique within one parent and kept in insertion
// order so listings stay deterministic.
//
// Node itself is not synchronized; [FileSystem] serializes access behind its
// own lock.
type Node struct {
	name   string
	uid    string // Stable identity; assigned at creation
	isFile bool
	nodeID atomic.Uint64 // Active registry ID; 0 if not registered

	children map[string]*Node
	order    []string // child names in insertion order

	perms map[string]string // per-user permission strings; stored, never enforced
}

// NewNode creates a detached node with a generated UUID.
//
// NOTE: Parent node is responsible for linking the returned Node as its
// child via [Node.AddChild]
func NewNode(name string, isFile bool) *Node {
	return NewNodeWithUUID(name, isFile, uuid.NewString())
}

// NewNodeWithUUID creates a detached node with a caller-pinned identity.
func NewNodeWithUUID(name string, isFile bool, uid string) *Node {
	n := &Node{
		name:   name,
		uid:    uid,
		isFile: isFile,
		perms:  make(map[string]string),
	}
	if !isFile {
		n.children = make(map[string]*Node)
	}
	return n
}

// Name returns the node's immutable name (last path component).
func (n *Node) Name() string {
	return n.name
}

// UUID returns the node's stable identity.
func (n *Node) UUID() string {
	return n.uid
}

// IsFile returns true if the node is a leaf that cannot own children.
func (n *Node) IsFile() bool {
	return n.isFile
}

// IsDir returns true if the node can own children.
func (n *Node) IsDir() bool {
	return !n.isFile
}

// NodeID returns the registry ID of the node; 0 if not registered
func (n *Node) NodeID() uint64 {
	return n.nodeID.Load()
}

// AddChild links child under its own name.
// Fails with ErrInvalidOperation on a file parent and ErrAlreadyExists when
// the name is already taken.
func (n *Node) AddChild(child *Node) error {
	if n.isFile {
		return errors.Wrapf(ErrInvalidOperation, "cannot add child to a file: %s", n.name)
	}
	if _, ok := n.children[child.name]; ok {
		return errors.Wrapf(ErrAlreadyExists, "child %q", child.name)
	}
	n.children[child.name] = child
	n.order = append(n.order, child.name)
	return nil
}

// RemoveChild unlinks the named child, discarding its entire subtree.
// Fails with ErrNotFound when no such child exists.
func (n *Node) RemoveChild(name string) error {
	if _, ok := n.children[name]; !ok {
		return errors.Wrapf(ErrNotFound, "child %q", name)
	}
	delete(n.children, name)
	for i, childName := range n.order {
		if childName == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetChild returns the named child. Absence is a normal traversal outcome,
// not an error.
func (n *Node) GetChild(name string) (child *Node, ok bool) {
	child, ok = n.children[name]
	return
}

// ChildNames returns the child names in insertion order.
func (n *Node) ChildNames() []string {
	return append([]string(nil), n.order...)
}

// SetPermissions records a free-form permission string for user. Nothing
// reads the value back to gate other operations.
func (n *Node) SetPermissions(user, perm string) {
	n.perms[user] = perm
}

// Permissions returns the permission string recorded for user; ok is false
// when the user has no entry.
func (n *Node) Permissions(user string) (perm string, ok bool) {
	perm, ok = n.perms[user]
	return
}
