/*
Command-line tool for enumerating child names of a directory tree.

Usage:

	$ treefind [<flags>] <subcommand> [<args> ...]

Use 'treefind help' to see more details.
*/
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/treefind/treefind/cli"
)

func main() {
	app := kingpin.New("treefind", "Recursively enumerate child names of a directory tree.")
	app.Version(cli.BuildVersion + " build: " + cli.BuildInfo)

	a := cli.NewApp()
	a.Attach(app)

	kingpin.MustParse(app.Parse(os.Args[1:]))
}
