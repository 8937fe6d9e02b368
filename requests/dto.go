package requests

import "github.com/brettbedarf/memfs"

// NodeRequestDTO is the JSON representation of [memfs.NodeCreateRequest]
type NodeRequestDTO struct {
	Path string                      `json:"path"`
	Type memfs.NodeCreateRequestType `json:"type"`
	UUID *string                     `json:"uuid,omitempty"` // Optional UUID to pin node identity at request time
	// Initial per-user permission strings for the terminal node
	Permissions map[string]string `json:"permissions,omitempty"`
}

// FileRequestDTO is the JSON representation of [memfs.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO
}

// DirRequestDTO is the JSON representation of [memfs.DirCreateRequest]
type DirRequestDTO struct {
	NodeRequestDTO
}
