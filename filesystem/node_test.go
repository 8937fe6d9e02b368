package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode_AssignsUUID(t *testing.T) {
	node := NewNode("file.txt", true)

	assert.Equal(t, "file.txt", node.Name())
	assert.True(t, node.IsFile())
	assert.False(t, node.IsDir())
	assert.NotEmpty(t, node.UUID())

	other := NewNode("file.txt", true)
	assert.NotEqual(t, node.UUID(), other.UUID())
}

func TestNewNodeWithUUID_PinsIdentity(t *testing.T) {
	node := NewNodeWithUUID("dir", false, "11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", node.UUID())
	assert.True(t, node.IsDir())
}

func TestNode_AddChild(t *testing.T) {
	parent := NewNode("parent", false)
	child := NewNode("child.txt", true)

	require.NoError(t, parent.AddChild(child))

	retrieved, exists := parent.GetChild("child.txt")
	require.True(t, exists)
	assert.Equal(t, child, retrieved)
}

func TestNode_AddChild_ToFile(t *testing.T) {
	parent := NewNode("file.txt", true)
	child := NewNode("child.txt", true)

	err := parent.AddChild(child)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Contains(t, err.Error(), "cannot add child to a file")
}

func TestNode_AddChild_Duplicate(t *testing.T) {
	parent := NewNode("parent", false)

	require.NoError(t, parent.AddChild(NewNode("child.txt", true)))

	err := parent.AddChild(NewNode("child.txt", true))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestNode_GetChild(t *testing.T) {
	parent := NewNode("parent", false)
	child := NewNode("child.txt", true)
	require.NoError(t, parent.AddChild(child))

	// Existing child
	retrieved, exists := parent.GetChild("child.txt")
	assert.True(t, exists)
	assert.Equal(t, child, retrieved)

	// Absence is a normal outcome, not an error
	missing, exists := parent.GetChild("nonexistent.txt")
	assert.False(t, exists)
	assert.Nil(t, missing)
}

func TestNode_RemoveChild(t *testing.T) {
	parent := NewNode("parent", false)
	require.NoError(t, parent.AddChild(NewNode("child.txt", true)))

	require.NoError(t, parent.RemoveChild("child.txt"))

	_, exists := parent.GetChild("child.txt")
	assert.False(t, exists)
	assert.Empty(t, parent.ChildNames())

	// Re-removal fails
	err := parent.RemoveChild("child.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNode_RemoveChild_FileParent(t *testing.T) {
	file := NewNode("file.txt", true)

	err := file.RemoveChild("anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNode_ChildNames_InsertionOrder(t *testing.T) {
	parent := NewNode("parent", false)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, parent.AddChild(NewNode(name, false)))
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, parent.ChildNames())

	// Removal keeps the relative order of the rest
	require.NoError(t, parent.RemoveChild("alpha"))
	assert.Equal(t, []string{"zeta", "mid"}, parent.ChildNames())

	// Re-adding appends at the end
	require.NoError(t, parent.AddChild(NewNode("alpha", false)))
	assert.Equal(t, []string{"zeta", "mid", "alpha"}, parent.ChildNames())
}

func TestNode_Permissions(t *testing.T) {
	node := NewNode("file.txt", true)

	_, ok := node.Permissions("user1")
	assert.False(t, ok)

	node.SetPermissions("user1", "rwx")
	perm, ok := node.Permissions("user1")
	require.True(t, ok)
	assert.Equal(t, "rwx", perm)

	// Unconditional overwrite, no validation of contents
	node.SetPermissions("user1", "not-a-mode")
	perm, ok = node.Permissions("user1")
	require.True(t, ok)
	assert.Equal(t, "not-a-mode", perm)

	// Other users stay absent
	_, ok = node.Permissions("user2")
	assert.False(t, ok)
}

func TestNode_Permissions_OnDirectory(t *testing.T) {
	dir := NewNode("dir", false)

	dir.SetPermissions("admin", "rw")
	perm, ok := dir.Permissions("admin")
	require.True(t, ok)
	assert.Equal(t, "rw", perm)
}
