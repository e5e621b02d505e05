package cli

import (
	"context"

	"github.com/pkg/errors"

	"github.com/treefind/treefind/fs/localfs"
)

type commandAttributes struct {
	path string

	out textOutput
}

func (c *commandAttributes) setup(svc appServices, parent commandParent) {
	cmd := parent.Command("attributes", "Show the attribute set of a single filesystem entry.").Alias("attr")

	cmd.Arg("path", "Path of the entry").Required().StringVar(&c.path)
	cmd.Action(svc.action(c.run))

	c.out.setup(svc)
}

func (c *commandAttributes) run(ctx context.Context) error {
	e, err := localfs.NewEntry(c.path)
	if err != nil {
		return errors.Wrap(err, "unable to examine entry")
	}

	c.out.printStdout("name:       %v\n", e.Name())
	c.out.printStdout("attributes: %v\n", e.Attributes())
	c.out.printStdout("mode:       %v\n", e.Mode())
	c.out.printStdout("size:       %v\n", e.Size())
	c.out.printStdout("modified:   %v\n", formatTimestamp(e.ModTime()))

	return nil
}
