// Package traverse implements lazy recursive enumeration of filesystem
// child names with wildcard, attribute and depth filters and symlink
// loop protection.
package traverse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/treefind/treefind/fs"
	"github.com/treefind/treefind/internal/attrexpr"
	"github.com/treefind/treefind/internal/wcmatch"
	"github.com/treefind/treefind/logging"
)

var log = logging.Module("treefind/traverse")

// Walker produces a lazy, single-pass, forward-only sequence of
// root-relative path strings. A Walker cannot be restarted; construct a
// new one to re-enumerate.
type Walker struct {
	rootPath string
	cfg      Config
	notify   Notifier
	tracker  VisitedPathTracker

	matcher        *wcmatch.WildcardMatcher
	include        []*wcmatch.WildcardMatcher
	exclude        []*wcmatch.WildcardMatcher
	attrFilter     *attrexpr.Expression
	switchFilter   *attrexpr.Expression
	hiddenExplicit bool

	// single-slot cell holding the most recent deferred enumeration
	// failure, consumed by the next predicate evaluation.
	pendingErr error

	stack     []*frame
	cancelled int32
}

// frame tracks iteration state of one open directory. Subdirectories
// accepted for recursion are queued and entered only after the current
// level is exhausted.
type frame struct {
	dir     fs.Directory
	prefix  string // root-relative, ends with a separator when non-empty
	path    string // logical path of the directory, following link names
	entries fs.Entries
	next    int
	loaded  bool
	subdirs []*frame
}

// Option modifies Walker construction.
type Option func(*Walker)

// WithNotifier routes warnings and error records to the provided
// notifier instead of discarding them.
func WithNotifier(n Notifier) Option {
	return func(w *Walker) { w.notify = n }
}

// WithTracker substitutes the visited-path tracker used when following
// symlinks.
func WithTracker(t VisitedPathTracker) Option {
	return func(w *Walker) { w.tracker = t }
}

// New validates the configuration and constructs a Walker rooted at the
// provided directory. Misconfiguration (malformed patterns or attribute
// expressions, unsupported enum values) aborts construction; no error
// is ever returned after that point.
func New(root fs.Directory, cfg Config, opts ...Option) (*Walker, error) {
	if root == nil {
		return nil, errors.New("root directory is required")
	}

	if cfg.MaxDepth < DepthUnbounded {
		return nil, errors.Errorf("unsupported depth limit: %v", cfg.MaxDepth)
	}

	if cfg.MinSize < 0 || cfg.MaxSize < 0 {
		return nil, errors.New("size bounds must not be negative")
	}

	w := &Walker{
		rootPath: root.FullPath(),
		cfg:      cfg,
		notify:   NullNotifier(),
	}

	if err := w.compileFilters(cfg); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(w)
	}

	if cfg.FollowSymlinks {
		if w.tracker == nil {
			w.tracker = NewVisitedPathTracker()
		}

		w.tracker.TryVisitPath(canonicalPath(root))
	}

	w.stack = []*frame{{dir: root, path: w.rootPath}}

	return w, nil
}

func (w *Walker) compileFilters(cfg Config) error {
	ignoreCase, err := cfg.Case.ignoreCase()
	if err != nil {
		return err
	}

	var matchOpts []wcmatch.Option

	matchOpts = append(matchOpts, wcmatch.IgnoreCase(ignoreCase))

	switch cfg.Semantics {
	case SemanticsExtended:
	case SemanticsSimple:
		matchOpts = append(matchOpts, wcmatch.Simple(true))
	default:
		return errors.Errorf("unsupported match semantics: %v", cfg.Semantics)
	}

	filter := cfg.Filter
	if filter == "" {
		filter = "*"
	}

	if w.matcher, err = wcmatch.NewWildcardMatcher(filter, matchOpts...); err != nil {
		return err
	}

	if w.include, err = compilePatternSet(cfg.Include); err != nil {
		return err
	}

	if w.exclude, err = compilePatternSet(cfg.Exclude); err != nil {
		return err
	}

	if cfg.Attributes != "" {
		if w.attrFilter, err = attrexpr.Parse(cfg.Attributes); err != nil {
			return err
		}
	}

	if !cfg.Switches.isZero() {
		w.switchFilter = switchExpression(cfg.Switches)
	}

	w.hiddenExplicit = referencesHidden(w.attrFilter) || referencesHidden(w.switchFilter)

	return nil
}

// compilePatternSet compiles include/exclude patterns, which always
// match case-insensitively.
func compilePatternSet(patterns []string) ([]*wcmatch.WildcardMatcher, error) {
	var result []*wcmatch.WildcardMatcher

	for _, p := range patterns {
		m, err := wcmatch.NewWildcardMatcher(p, wcmatch.IgnoreCase(true))
		if err != nil {
			return nil, err
		}

		result = append(result, m)
	}

	return result, nil
}

func switchExpression(s Switches) *attrexpr.Expression {
	var set, clear fs.AttributeSet

	if s.Directory {
		set |= fs.AttributeDirectory
	}

	if s.File {
		clear |= fs.AttributeDirectory
	}

	if s.Hidden {
		set |= fs.AttributeHidden
	}

	if s.ReadOnly {
		set |= fs.AttributeReadOnly
	}

	if s.System {
		set |= fs.AttributeSystem
	}

	return attrexpr.FromFlags(set, clear)
}

func referencesHidden(e *attrexpr.Expression) bool {
	return e != nil && e.References(fs.AttributeHidden)
}

func (p CasePolicy) ignoreCase() (bool, error) {
	switch p {
	case CaseDefault:
		// case-insensitive except on case-sensitive platforms
		return runtime.GOOS == "windows" || runtime.GOOS == "darwin", nil
	case CaseSensitive:
		return false, nil
	case CaseInsensitive:
		return true, nil
	default:
		return false, errors.Errorf("unsupported case policy: %v", int(p))
	}
}

// Cancel requests cooperative cancellation. No further recursion
// occurs, but already-listed entries of open directory levels may still
// be yielded.
func (w *Walker) Cancel() {
	atomic.StoreInt32(&w.cancelled, 1)
}

func (w *Walker) isCancelled() bool {
	return atomic.LoadInt32(&w.cancelled) != 0
}

// Next advances the traversal and returns the next matching
// root-relative path. It returns ok==false when the traversal is
// exhausted.
func (w *Walker) Next(ctx context.Context) (path string, ok bool) {
	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]

		// frames stacked but not yet opened are abandoned after
		// cancellation, so no new directory is ever read.
		if !f.loaded && (w.isCancelled() || ctx.Err() != nil) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		if !f.loaded {
			f.loaded = true

			entries, err := f.dir.Readdir(ctx)
			if err != nil {
				// defer the failure into the pending-error cell; it is
				// reported on the next entry evaluated, which continues
				// the traversal past unreadable content.
				w.pendingErr = err
			}

			f.entries = entries
		}

		if f.next >= len(f.entries) {
			w.stack = w.stack[:len(w.stack)-1]

			// subdirectories queued before cancellation are abandoned.
			if !w.isCancelled() && ctx.Err() == nil {
				for i := len(f.subdirs) - 1; i >= 0; i-- {
					w.stack = append(w.stack, f.subdirs[i])
				}
			}

			continue
		}

		e := f.entries[f.next]
		f.next++

		if sub := w.maybeRecurse(ctx, f, e); sub != nil {
			f.subdirs = append(f.subdirs, sub)
		}

		if w.includeEntry(e) {
			return f.prefix + e.Name(), true
		}
	}

	return "", false
}

// maybeRecurse implements the recursion predicate, returning a queued
// frame for entries to descend into.
func (w *Walker) maybeRecurse(ctx context.Context, f *frame, e fs.Entry) *frame {
	if w.isCancelled() || ctx.Err() != nil {
		return nil
	}

	if w.cfg.MaxDepth != DepthUnbounded && depthBelowRoot(w.rootPath, f.path) >= w.cfg.MaxDepth {
		return nil
	}

	if e.Attributes().Has(fs.AttributeHidden) && !w.cfg.Force && !w.hiddenExplicit {
		return nil
	}

	var target fs.Directory

	switch d := e.(type) {
	case fs.Directory:
		target = d

	case fs.Symlink:
		// links are never followed implicitly; without a tracker there
		// is no loop protection.
		if !w.cfg.FollowSymlinks {
			return nil
		}

		resolved, err := d.Resolve(ctx)
		if err != nil {
			w.pendingErr = err
			return nil
		}

		td, ok := resolved.(fs.Directory)
		if !ok {
			return nil
		}

		target = td

	default:
		return nil
	}

	if w.cfg.FollowSymlinks {
		cp := canonicalPath(target)

		if !w.tracker.TryVisitPath(cp) {
			log(ctx).Debugf("cycle detected at %v", cp)
			w.notify.Warning(fmt.Sprintf("not descending into %q: directory %q was already visited", filepath.Join(f.path, e.Name()), cp))

			return nil
		}
	}

	return &frame{
		dir:    target,
		prefix: f.prefix + e.Name() + string(filepath.Separator),
		path:   filepath.Join(f.path, e.Name()),
	}
}

// includeEntry implements the inclusion predicate deciding whether the
// entry appears in the output. As a side effect it drains the
// pending-error cell.
func (w *Walker) includeEntry(e fs.Entry) bool {
	if err := w.pendingErr; err != nil {
		w.pendingErr = nil

		// the record is attributed to the entry being evaluated, which
		// is not necessarily the one the failure occurred on.
		w.notify.Error(ErrorRecord{
			Category: categorize(err),
			Path:     e.FullPath(),
			Err:      err,
		})
	}

	attrs := e.Attributes()

	if w.cfg.ReturnAllContainers && e.IsDir() {
		return true
	}

	if w.attrFilter != nil && !w.attrFilter.Evaluate(attrs) {
		return false
	}

	if w.switchFilter != nil && !w.switchFilter.Evaluate(attrs) {
		return false
	}

	if attrs.Has(fs.AttributeHidden) && !w.cfg.Force && !w.hiddenExplicit {
		return false
	}

	if !w.matcher.Match(e.Name()) {
		return false
	}

	if !e.IsDir() {
		if w.cfg.MinSize > 0 && e.Size() < w.cfg.MinSize {
			return false
		}

		if w.cfg.MaxSize > 0 && e.Size() > w.cfg.MaxSize {
			return false
		}
	}

	if len(w.include) > 0 && !matchAny(w.include, e.Name()) {
		return false
	}

	if matchAny(w.exclude, e.Name()) {
		return false
	}

	return true
}

func matchAny(matchers []*wcmatch.WildcardMatcher, name string) bool {
	for _, m := range matchers {
		if m.Match(name) {
			return true
		}
	}

	return false
}

func categorize(err error) ErrorCategory {
	if errors.Is(err, os.ErrPermission) {
		return CategoryPermissionDenied
	}

	return CategoryReadError
}

// canonicalPath returns the identity used for visited-path tracking.
func canonicalPath(e fs.Entry) string {
	if cp, ok := e.(fs.CanonicalPather); ok {
		if p, err := cp.CanonicalPath(); err == nil {
			return p
		}
	}

	return filepath.Clean(e.FullPath())
}
