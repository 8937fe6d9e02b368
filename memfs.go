// Package memfs models an in-memory hierarchical namespace: a tree of named
// nodes where directories own their children by name and files are leaves.
// It is a standalone library with a small demo driver, not a mounted or
// persisted filesystem.
//
// The root package holds the request and interface types shared between
// entrypoints and the filesystem package.
package memfs

// NodeCreateRequest carries user input for node creation. It is passed from
// entrypoints (cli, seed files) to the filesystem create methods.
type NodeCreateRequest struct {
	Path string
	Type NodeCreateRequestType
	UUID string // Node identity; pinned at request time or defaulted during unmarshal
	// Initial per-user permission strings applied to the terminal node
	Permissions map[string]string
}

// Implement NodeRequestor interface for the base type
func (r *NodeCreateRequest) GetType() NodeCreateRequestType {
	return r.Type
}

func (r *NodeCreateRequest) GetPath() string {
	return r.Path
}

// Valid types are FileNodeType, DirNodeType
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeCreateRequest
}

type DirCreateRequest struct {
	NodeCreateRequest
}

// NodeRequestor is an interface implemented by all node request types
type NodeRequestor interface {
	GetType() NodeCreateRequestType
	GetPath() string
}

var (
	_ NodeRequestor = (*FileCreateRequest)(nil)
	_ NodeRequestor = (*DirCreateRequest)(nil)
)
