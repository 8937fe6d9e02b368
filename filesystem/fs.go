package filesystem

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/internal/util"
)

// Compile-time interface checks against the root package contracts
var (
	_ memfs.NodeInfo     = (*Node)(nil)
	_ memfs.TreeOperator = (*FileSystem)(nil)
)

// rootNodeID is the registry ID reserved for the root node
const rootNodeID = 1

// FileSystem owns the root of the node tree and resolves slash-delimited
// paths into per-node operations. A single RWMutex serializes tree access;
// the node registry map is lock-free.
type FileSystem struct {
	cfg  *config.Config
	mu   sync.RWMutex
	root *Node // Root of node tree; always a directory, never removed

	lastNodeID   atomic.Uint64             // Last registry NodeID assigned; incremented when new nodes are created
	nodeRegistry *xsync.Map[uint64, *Node] // maps registry NodeIDs to Nodes
}

// NewFS creates an empty tree holding only the root directory.
func NewFS(cfg *config.Config) *FileSystem {
	if cfg == nil {
		cfg = config.NewConfig(nil)
	}
	root := NewNode(cfg.RootName, false)
	root.nodeID.Store(rootNodeID)

	fs := &FileSystem{cfg: cfg, root: root}
	fs.lastNodeID.Store(rootNodeID)
	fs.nodeRegistry = xsync.NewMap[uint64, *Node]()
	fs.nodeRegistry.Store(rootNodeID, root)
	return fs
}

// Root returns the root directory node.
func (fs *FileSystem) Root() *Node {
	return fs.root
}

// splitPath strips leading/trailing slashes and splits the remainder into
// segments. "" and "/" yield no segments so the root never grows a spurious
// child named "".
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// traverse descends from root one segment at a time. Absence is reported to
// the caller, never raised: a missing child or a path running through a file
// returns ok=false.
func (fs *FileSystem) traverse(segs []string) (*Node, bool) {
	cur := fs.root
	for _, seg := range segs {
		if cur == nil || cur.isFile {
			return nil, false
		}
		cur, _ = cur.GetChild(seg)
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Create makes the node at path, creating missing intermediate segments as
// directories. Existing directory segments along the way are pass-through,
// so re-creating a directory path is a no-op. Fails with ErrInvalidOperation
// when the path runs through a file and with ErrTypeConflict when the
// terminal segment already exists as the other type.
//
// Intermediate directories inserted before a terminal failure are kept.
func (fs *FileSystem) Create(path string, isFile bool) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_, err := fs.createLocked(path, isFile, "")
	return err
}

// createLocked walks the path under the held write lock, inserting missing
// segments, and returns the terminal node. uid pins the terminal node's
// identity when non-empty.
func (fs *FileSystem) createLocked(path string, isFile bool, uid string) (*Node, error) {
	logger := util.GetLogger("fs.Create")

	segs := splitPath(path)
	cur := fs.root
	newCnt := 0
	for i, seg := range segs {
		if cur.isFile {
			return nil, errors.Wrapf(ErrInvalidOperation, "cannot create path inside a file: %s", cur.name)
		}

		child, ok := cur.GetChild(seg)
		if !ok {
			leaf := i == len(segs)-1
			var node *Node
			if leaf && uid != "" {
				node = NewNodeWithUUID(seg, isFile, uid)
			} else {
				// intermediate segments are always directories
				node = NewNode(seg, leaf && isFile)
			}
			if err := cur.AddChild(node); err != nil {
				return nil, err
			}
			fs.register(node)
			newCnt++
			child = node
		}
		cur = child
	}

	if cur.isFile != isFile {
		return nil, errors.Wrapf(ErrTypeConflict, "path %q already exists as a different type", path)
	}
	if newCnt > 0 {
		logger.Debug().Str("path", path).Int("new", newCnt).Msg("Created node(s)")
	}
	return cur, nil
}

// AddFileNode adds a new file node to the filesystem. It will add any
// missing directories in the path, apply the request's identity and initial
// permissions to the leaf, and return the newly created node.
// If a node already exists at the requested path, it will return an error.
func (fs *FileSystem) AddFileNode(req *memfs.FileCreateRequest) (*Node, error) {
	logger := util.GetLogger("AddFileNode")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.traverse(splitPath(req.Path)); ok {
		err := errors.Wrapf(ErrAlreadyExists, "file already exists at path %s", req.Path)
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}

	node, err := fs.createLocked(req.Path, true, req.UUID)
	if err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}
	for user, perm := range req.Permissions {
		node.SetPermissions(user, perm)
	}
	logger.Debug().Str("path", req.Path).Msg("Added new file node")
	return node, nil
}

// AddDirNode recursively adds all missing directories in the request's path
// and returns the leaf. It is equivalent to calling `mkdir -p` from a shell
// and similarly will only create directories that do not already exist and
// will not error if the leaf already exists.
func (fs *FileSystem) AddDirNode(req *memfs.DirCreateRequest) (*Node, error) {
	logger := util.GetLogger("AddDirNode")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	node, err := fs.createLocked(req.Path, false, req.UUID)
	if err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create directory(s)")
		return nil, err
	}
	for user, perm := range req.Permissions {
		node.SetPermissions(user, perm)
	}
	return node, nil
}

// Delete removes the node at path together with its entire subtree. There is
// no recursive-empty check; a populated directory goes with everything under
// it. Fails with ErrNotFound when the path does not resolve (the root itself
// is never removable).
func (fs *FileSystem) Delete(path string) error {
	logger := util.GetLogger("fs.Delete")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	segs := splitPath(path)
	if len(segs) == 0 {
		return errors.Wrapf(ErrNotFound, "path %q", path)
	}
	parent, ok := fs.traverse(segs[:len(segs)-1])
	if !ok {
		return errors.Wrapf(ErrNotFound, "path %q", path)
	}

	name := segs[len(segs)-1]
	child, _ := parent.GetChild(name)
	if err := parent.RemoveChild(name); err != nil {
		return err
	}
	fs.forget(child)
	logger.Debug().Str("path", path).Msg("Deleted subtree")
	return nil
}

// ListDirectory returns the immediate child names at path in insertion
// order. Fails with ErrNotFound when the path does not resolve and
// ErrInvalidOperation when it resolves to a file.
func (fs *FileSystem) ListDirectory(path string) ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, ok := fs.traverse(splitPath(path))
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "path %q", path)
	}
	if node.isFile {
		return nil, errors.Wrapf(ErrInvalidOperation, "path %q is not a directory", path)
	}
	return node.ChildNames(), nil
}

// Search walks the whole tree depth-first and returns the absolute path of
// every node named name, in traversal order. The root's display name is a
// legitimate match and yields "/". This is a full scan over all nodes, not
// an index lookup; absence is an empty result, never an error.
func (fs *FileSystem) Search(name string) []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return searchNode(fs.root, "/", name, nil)
}

// searchNode accumulates matches in the subtree rooted at n, where path is
// n's absolute path. Files are leaves: they contribute at most a name match
// and are never descended into.
func searchNode(n *Node, path, name string, acc []string) []string {
	if n.name == name {
		acc = append(acc, path)
	}
	if n.isFile {
		return acc
	}
	for _, childName := range n.order {
		childPath := path + "/" + childName
		if path == "/" {
			childPath = "/" + childName
		}
		acc = searchNode(n.children[childName], childPath, name, acc)
	}
	return acc
}

// SetPermissions records a free-form permission string for user on the node
// at path. Fails with ErrNotFound when the path does not resolve.
func (fs *FileSystem) SetPermissions(path, user, perm string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node, ok := fs.traverse(splitPath(path))
	if !ok {
		return errors.Wrapf(ErrNotFound, "path %q", path)
	}
	node.SetPermissions(user, perm)
	return nil
}

// GetPermissions returns the permission string recorded for user on the node
// at path; ok is false when the user has no entry. Fails with ErrNotFound
// when the path does not resolve.
func (fs *FileSystem) GetPermissions(path, user string) (perm string, ok bool, err error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, found := fs.traverse(splitPath(path))
	if !found {
		return "", false, errors.Wrapf(ErrNotFound, "path %q", path)
	}
	perm, ok = node.Permissions(user)
	return perm, ok, nil
}

/* Node registry */

// NodeByID looks up a registered node by its registry NodeID.
func (fs *FileSystem) NodeByID(id uint64) (*Node, bool) {
	return fs.nodeRegistry.Load(id)
}

// register allocates the next registry NodeID and tracks the node.
func (fs *FileSystem) register(n *Node) uint64 {
	id := fs.lastNodeID.Add(1)
	n.nodeID.Store(id)
	fs.nodeRegistry.Store(id, n)
	return id
}

// forget drops the node and its whole subtree from the registry after the
// subtree has been unlinked from its parent.
func (fs *FileSystem) forget(n *Node) {
	if n == nil {
		return
	}
	fs.nodeRegistry.Delete(n.NodeID())
	for _, name := range n.order {
		fs.forget(n.children[name])
	}
}
