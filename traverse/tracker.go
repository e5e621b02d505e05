package traverse

// VisitedPathTracker records canonical paths of directories entered
// during a single traversal and detects revisits caused by symbolic
// link cycles. Implementations are owned by one traversal and never
// shared across goroutines.
type VisitedPathTracker interface {
	// TryVisitPath registers a path, returning true when it was newly
	// added and false when it had been visited before.
	TryVisitPath(path string) bool
}

type mapTracker struct {
	visited map[string]struct{}
}

// NewVisitedPathTracker returns a tracker backed by an in-memory set.
func NewVisitedPathTracker() VisitedPathTracker {
	return &mapTracker{visited: map[string]struct{}{}}
}

func (t *mapTracker) TryVisitPath(path string) bool {
	if _, ok := t.visited[path]; ok {
		return false
	}

	t.visited[path] = struct{}{}

	return true
}
