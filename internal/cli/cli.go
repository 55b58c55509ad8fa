package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/afero"

	"github.com/amirbrooks/marc/internal/buildinfo"
	"github.com/amirbrooks/marc/internal/cmdline"
	"github.com/amirbrooks/marc/internal/config"
	"github.com/amirbrooks/marc/internal/editor"
	"github.com/amirbrooks/marc/internal/logging"
	"github.com/amirbrooks/marc/internal/store"
	"github.com/amirbrooks/marc/internal/ui"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
	ExitInternal = 10
)

const program = "marc"

// App carries everything a single invocation touches, so commands never
// read process state directly.
type App struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	FS       afero.Fs
	Settings config.Settings
	Launcher editor.Launcher

	// PipedInput reports that Stdin is a pipe or file whose lines are
	// extra arguments for add, rm and done.
	PipedInput bool
}

func Run(args []string) int {
	settings, err := config.Resolve(config.EnvFromOS())
	if err != nil {
		fmt.Fprintln(os.Stderr, program+":", err)
		return ExitInternal
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(settings.LogLevel, logging.WarnLevel),
		Output: os.Stderr,
		Pretty: true,
	})
	ui.Configure(settings.Color, os.Stdout)

	app := &App{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		FS:       afero.NewOsFs(),
		Settings: settings,
		Launcher: editor.Command{
			Program: settings.Editor,
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		},
		PipedInput: stdinIsPiped(os.Stdin),
	}
	return app.Run(args)
}

func (a *App) Run(args []string) int {
	if len(args) == 0 {
		a.printHelp(a.Stderr)
		return ExitUsage
	}

	cmd, err := cmdline.ParseSubcommand(args[0])
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n\n", program, err)
		a.printHelp(a.Stderr)
		return ExitUsage
	}

	tokens := args[1:]
	if a.PipedInput && acceptsPipedInput(cmd) {
		piped, err := readPipedTokens(a.Stdin)
		if err != nil {
			fmt.Fprintln(a.Stderr, program+": read stdin:", err)
			return ExitInternal
		}
		tokens = append(tokens, piped...)
	}

	parsed, err := cmdline.ParseArgs(cmd, tokens)
	if err != nil {
		fmt.Fprintln(a.Stderr, program+":", err)
		return ExitUsage
	}
	logging.Debug().Str("cmd", cmd.String()).Int("args", len(parsed)).Msg("dispatch")

	if parsed.Flag("help") {
		fmt.Fprint(a.Stdout, cmdline.Usage(program, cmd))
		return ExitOK
	}

	switch cmd {
	case cmdline.Help:
		a.printHelp(a.Stdout)
		return ExitOK
	case cmdline.Version:
		fmt.Fprintln(a.Stdout, buildinfo.String())
		return ExitOK
	case cmdline.Add:
		return a.cmdAdd(parsed)
	case cmdline.Log:
		return a.cmdLog(parsed)
	case cmdline.Remove:
		return a.cmdRemove(parsed)
	case cmdline.Done:
		return a.cmdDone(parsed)
	case cmdline.Edit:
		return a.cmdEdit(parsed)
	default:
		fmt.Fprintf(a.Stderr, "%s: unhandled subcommand %s\n", program, cmd)
		return ExitInternal
	}
}

func (a *App) printHelp(w io.Writer) {
	fmt.Fprintf(w, "%s - personal todo list\n\n%s\n  %s <command> [args]\n\n%s\n", program, ui.Title("Usage:"), program, ui.Title("Commands:"))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, cmd := range cmdline.Subcommands() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmdline.Synopsis(cmd), cmdline.Summary(cmd))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%s\n", ui.Hint(fmt.Sprintf("Run '%s <command> --help' for the flags of a command.", program)))
	fmt.Fprintf(w, `Todos are stored in %s.

Environment:
  MARC_HOME        Data directory (default: ~/.marc)
  EDITOR           Program used by 'edit' (default: vi)
  MARC_LOG_LEVEL   debug|info|warn|error|off
  NO_COLOR         Disable colored output
`, displayPath(a.Settings.DataFile))
}

func displayPath(p string) string {
	if p == "" {
		return "~/.marc/todos.yaml"
	}
	return p
}

func (a *App) openStore() (*store.Store, error) {
	return store.Open(a.FS, a.Settings.DataFile)
}

// exitCodeFor maps store and editor errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrEmpty):
		return ExitNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrAlreadyCompleted):
		return ExitConflict
	case errors.Is(err, store.ErrInvalid):
		return ExitUsage
	default:
		return ExitInternal
	}
}
