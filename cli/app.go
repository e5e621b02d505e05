// Package cli implements the treefind command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/treefind/treefind/logging"
)

type appServices interface {
	action(f func(ctx context.Context) error) func(*kingpin.ParseContext) error
	stdout() io.Writer
	stderr() io.Writer
}

type commandParent interface {
	Command(name, help string) *kingpin.CmdClause
}

// App implements the treefind CLI commands.
type App struct {
	verbose bool
	noColor bool
	logFile string

	stdoutWriter io.Writer
	stderrWriter io.Writer

	listCommand       commandList
	attributesCommand commandAttributes
}

// NewApp returns an App writing to the process standard streams.
func NewApp() *App {
	return &App{
		stdoutWriter: colorable.NewColorableStdout(),
		stderrWriter: colorable.NewColorableStderr(),
	}
}

// SetOutput overrides output streams, used in tests.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.stdoutWriter = stdout
	a.stderrWriter = stderr
}

// Attach registers all commands and global flags with the kingpin
// application.
func (a *App) Attach(app *kingpin.Application) {
	app.Flag("verbose", "Enable verbose logging").Short('v').BoolVar(&a.verbose)
	app.Flag("no-color", "Disable colored output").BoolVar(&a.noColor)
	app.Flag("log-file", "Also write log output to the given file").StringVar(&a.logFile)
	app.PreAction(a.applyColorMode)

	a.listCommand.setup(a, app)
	a.attributesCommand.setup(a, app)
}

func (a *App) applyColorMode(_ *kingpin.ParseContext) error {
	if a.noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	return nil
}

func (a *App) rootContext() (context.Context, error) {
	ctx := context.Background()

	var factories []logging.LoggerForModuleFunc

	if a.verbose {
		factories = append(factories, logging.ToWriter(a.stderrWriter))
	}

	if a.logFile != "" {
		// the file is held open for the life of the process.
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
		if err != nil {
			return nil, errors.Wrap(err, "unable to open log file")
		}

		factories = append(factories, logging.ToWriter(f))
	}

	switch len(factories) {
	case 0:
		return ctx, nil
	case 1:
		return logging.WithLogger(ctx, factories[0]), nil
	default:
		return logging.WithLogger(ctx, logging.BroadcastTo(factories...)), nil
	}
}

func (a *App) action(f func(ctx context.Context) error) func(*kingpin.ParseContext) error {
	return func(_ *kingpin.ParseContext) error {
		ctx, err := a.rootContext()
		if err != nil {
			return err
		}

		return f(ctx)
	}
}

func (a *App) stdout() io.Writer {
	return a.stdoutWriter
}

func (a *App) stderr() io.Writer {
	return a.stderrWriter
}
