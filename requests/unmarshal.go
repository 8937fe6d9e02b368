package requests

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brettbedarf/memfs"
)

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (memfs.NodeCreateRequestType, error) {
	var meta struct {
		Type memfs.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling
func UnmarshalFileRequest(data []byte) (*memfs.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memfs.FileCreateRequest{
		NodeCreateRequest: convertNodeDTO(dto.NodeRequestDTO),
	}, nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling
func UnmarshalDirRequest(data []byte) (*memfs.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memfs.DirCreateRequest{
		NodeCreateRequest: convertNodeDTO(dto.NodeRequestDTO),
	}, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) memfs.NodeCreateRequest {
	perms := dto.Permissions
	if perms == nil {
		perms = make(map[string]string)
	}

	return memfs.NodeCreateRequest{
		Path:        dto.Path,
		Type:        dto.Type,
		UUID:        valueOrDefault(dto.UUID, uuid.New().String()),
		Permissions: perms,
	}
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
