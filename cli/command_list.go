package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alecthomas/units"
	"github.com/pkg/errors"

	"github.com/treefind/treefind/fs/localfs"
	"github.com/treefind/treefind/traverse"
)

type commandList struct {
	path            string
	filter          string
	simpleMatch     bool
	caseSensitive   bool
	caseInsensitive bool
	include         []string
	exclude         []string
	attributes      string
	directory       bool
	file            bool
	hidden          bool
	readOnly        bool
	system          bool
	force           bool
	recurse         bool
	depth           int
	followSymlinks  bool
	containers      bool
	minSize         string
	maxSize         string
	long            bool

	out textOutput
}

func (c *commandList) setup(svc appServices, parent commandParent) {
	cmd := parent.Command("list", "Recursively list child names of a directory.").Alias("ls").Default()

	cmd.Arg("path", "Directory to enumerate").Required().StringVar(&c.path)
	cmd.Flag("filter", "Wildcard expression applied to entry names").Short('f').StringVar(&c.filter)
	cmd.Flag("simple-match", "Restrict the filter to '*' and '?' wildcards").BoolVar(&c.simpleMatch)
	cmd.Flag("case-sensitive", "Match names case-sensitively").BoolVar(&c.caseSensitive)
	cmd.Flag("case-insensitive", "Match names case-insensitively").BoolVar(&c.caseInsensitive)
	cmd.Flag("include", "Only include names matching the pattern (repeatable)").StringsVar(&c.include)
	cmd.Flag("exclude", "Exclude names matching the pattern (repeatable)").StringsVar(&c.exclude)
	cmd.Flag("attributes", "Attribute filter expression, e.g. 'hidden+!system,archive'").StringVar(&c.attributes)
	cmd.Flag("directory", "Only include directories").BoolVar(&c.directory)
	cmd.Flag("file", "Only include files").BoolVar(&c.file)
	cmd.Flag("hidden", "Only include hidden entries").BoolVar(&c.hidden)
	cmd.Flag("read-only", "Only include read-only entries").BoolVar(&c.readOnly)
	cmd.Flag("system", "Only include system entries").BoolVar(&c.system)
	cmd.Flag("force", "Include hidden entries that would otherwise be suppressed").BoolVar(&c.force)
	cmd.Flag("recurse", "Recurse into subdirectories").Short('r').BoolVar(&c.recurse)
	cmd.Flag("depth", "Limit recursion depth").Default("-1").IntVar(&c.depth)
	cmd.Flag("follow-symlinks", "Follow symbolic links to directories").BoolVar(&c.followSymlinks)
	cmd.Flag("containers", "Always list directories regardless of filters").BoolVar(&c.containers)
	cmd.Flag("min-size", "Minimum file size, e.g. 10KiB").StringVar(&c.minSize)
	cmd.Flag("max-size", "Maximum file size, e.g. 1MiB").StringVar(&c.maxSize)
	cmd.Flag("long", "Long output").Short('l').BoolVar(&c.long)
	cmd.Action(svc.action(c.run))

	c.out.setup(svc)
}

func (c *commandList) traversalConfig() (traverse.Config, error) {
	cfg := traverse.Config{
		Filter:     c.filter,
		Include:    c.include,
		Exclude:    c.exclude,
		Attributes: c.attributes,
		Switches: traverse.Switches{
			Directory: c.directory,
			File:      c.file,
			Hidden:    c.hidden,
			ReadOnly:  c.readOnly,
			System:    c.system,
		},
		ReturnAllContainers: c.containers,
		Force:               c.force,
		FollowSymlinks:      c.followSymlinks,
	}

	if c.simpleMatch {
		cfg.Semantics = traverse.SemanticsSimple
	}

	switch {
	case c.caseSensitive && c.caseInsensitive:
		return traverse.Config{}, errors.New("--case-sensitive and --case-insensitive are mutually exclusive")
	case c.caseSensitive:
		cfg.Case = traverse.CaseSensitive
	case c.caseInsensitive:
		cfg.Case = traverse.CaseInsensitive
	}

	switch {
	case c.depth >= 0:
		cfg.MaxDepth = c.depth
	case c.recurse:
		cfg.MaxDepth = traverse.DepthUnbounded
	default:
		cfg.MaxDepth = 0
	}

	var err error

	if cfg.MinSize, err = parseSize(c.minSize); err != nil {
		return traverse.Config{}, errors.Wrap(err, "invalid --min-size")
	}

	if cfg.MaxSize, err = parseSize(c.maxSize); err != nil {
		return traverse.Config{}, errors.Wrap(err, "invalid --max-size")
	}

	return cfg, nil
}

func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	v, err := units.ParseBase2Bytes(s)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return int64(v), nil
}

func (c *commandList) run(ctx context.Context) error {
	cfg, err := c.traversalConfig()
	if err != nil {
		return err
	}

	dir, err := localfs.Directory(c.path)
	if err != nil {
		return errors.Wrap(err, "unable to open root directory")
	}

	w, err := traverse.New(dir, cfg, traverse.WithNotifier(&listNotifier{&c.out}))
	if err != nil {
		return errors.Wrap(err, "invalid traversal configuration")
	}

	for {
		name, ok := w.Next(ctx)
		if !ok {
			break
		}

		c.printEntry(name)
	}

	return nil
}

func (c *commandList) printEntry(name string) {
	fullPath := filepath.Join(c.path, name)

	fi, err := os.Lstat(fullPath)
	if err != nil {
		// the entry disappeared between enumeration and display
		defaultColor.Fprintln(c.out.stdout(), name) //nolint:errcheck
		return
	}

	col := defaultColor
	if fi.IsDir() {
		col = dirColor
	}

	if c.long {
		col.Fprintf(c.out.stdout(), "%v %12d %v %v\n", fi.Mode(), fi.Size(), formatTimestamp(fi.ModTime()), name) //nolint:errcheck
		return
	}

	col.Fprintln(c.out.stdout(), name) //nolint:errcheck
}

// listNotifier routes traversal warnings and error records to stderr.
type listNotifier struct {
	out *textOutput
}

func (n *listNotifier) Warning(msg string) {
	warningColor.Fprintf(n.out.stderr(), "WARNING: %v\n", msg) //nolint:errcheck
}

func (n *listNotifier) Error(rec traverse.ErrorRecord) {
	errorColor.Fprintf(n.out.stderr(), "ERROR: %v: %v: %v\n", rec.Category, rec.Path, rec.Err) //nolint:errcheck
}
