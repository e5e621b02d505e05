package traverse

// Semantics selects the wildcard dialect used for the primary match
// expression.
type Semantics int

// Supported match semantics.
const (
	// SemanticsExtended supports '*', '?', escapes and bracket sequences.
	SemanticsExtended Semantics = iota

	// SemanticsSimple supports only '*' and '?'.
	SemanticsSimple
)

// CasePolicy selects case sensitivity of the primary match expression.
type CasePolicy int

// Supported case policies.
const (
	// CaseDefault is case-insensitive except on platforms with
	// case-sensitive filesystems.
	CaseDefault CasePolicy = iota

	CaseSensitive
	CaseInsensitive
)

// DepthUnbounded disables the recursion depth limit.
const DepthUnbounded = -1

// Switches are boolean attribute filters. Set switches are combined
// into a single conjunction which is ANDed with the Attributes
// expression at evaluation time.
type Switches struct {
	// Directory restricts results to directories.
	Directory bool

	// File restricts results to non-directories.
	File bool

	Hidden   bool
	ReadOnly bool
	System   bool
}

func (s Switches) isZero() bool {
	return s == Switches{}
}

// Config captures the filters and policies of one traversal. It is
// consumed by New and not referenced afterwards.
type Config struct {
	// Filter is the primary wildcard match expression applied to entry
	// names. Empty means match-all.
	Filter string

	Semantics Semantics
	Case      CasePolicy

	// Include and Exclude are wildcard pattern sets applied to entry
	// names after the primary filter, always case-insensitively. An
	// empty set passes everything.
	Include []string
	Exclude []string

	// Attributes is an attribute filter expression, e.g.
	// "hidden+!system,archive".
	Attributes string

	Switches Switches

	// ReturnAllContainers surfaces every directory regardless of
	// filters, so the tree shape remains visible when files are
	// filtered out.
	ReturnAllContainers bool

	// Force includes hidden entries that would otherwise be suppressed.
	Force bool

	// MaxDepth limits recursion: entries whose containing directory is
	// at or beyond this depth below the root are not descended into.
	// Zero disables recursion entirely; DepthUnbounded removes the
	// limit.
	MaxDepth int

	// FollowSymlinks descends into symlinked directories, guarded by a
	// visited-path tracker.
	FollowSymlinks bool

	// MinSize and MaxSize bound the size of non-directory results.
	// Zero means no bound.
	MinSize int64
	MaxSize int64
}
