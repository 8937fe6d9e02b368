package filesystem

import (
	"fmt"
	"io"
)

// DisplayTree writes an indented dump of the subtree rooted at node to w,
// marking directories with "+" and files with "-". Children print in
// insertion order.
func DisplayTree(w io.Writer, node *Node, indent string) {
	if node.isFile {
		fmt.Fprintf(w, "%s- %s\n", indent, node.name)
		return
	}
	fmt.Fprintf(w, "%s+ %s\n", indent, node.name)
	for _, name := range node.order {
		DisplayTree(w, node.children[name], indent+"  ")
	}
}

// Display dumps the whole tree to w. Diagnostic helper only.
func (fs *FileSystem) Display(w io.Writer) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	DisplayTree(w, fs.root, "")
}
