package traverse

import (
	"path/filepath"
	"strings"
)

// depthBelowRoot computes the recursion depth of a directory below the
// traversal root by counting separator characters in the path suffix
// past the root. The count is independent of whether the root was
// supplied with a trailing separator.
func depthBelowRoot(root, dir string) int {
	sep := string(filepath.Separator)

	root = strings.TrimRight(root, sep)
	tail := strings.TrimPrefix(dir, root)
	tail = strings.TrimSuffix(tail, sep)

	return strings.Count(tail, sep)
}
