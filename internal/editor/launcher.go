package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/amirbrooks/marc/internal/logging"
)

const DefaultProgram = "vi"

// Launcher opens path in an editor and blocks until the editor exits.
type Launcher interface {
	Launch(path string) error
}

// Command launches an external editor program with the terminal attached.
type Command struct {
	Program string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Launch runs the program with path as its only argument. Programs with
// arguments (e.g. "code --wait") run through sh -c with the path quoted.
func (c Command) Launch(path string) error {
	program := strings.TrimSpace(c.Program)
	if program == "" {
		program = DefaultProgram
	}
	var cmd *exec.Cmd
	if strings.ContainsAny(program, " \t") {
		cmd = exec.Command("sh", "-c", program+" "+shellQuote(path))
	} else {
		cmd = exec.Command(program, path)
	}
	cmd.Stdin = orDefault(c.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(c.Stderr, os.Stderr)

	logging.Debug().Str("editor", program).Str("path", path).Msg("launching editor")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor %q exited with status %d", program, exitErr.ExitCode())
		}
		return fmt.Errorf("editor %q: %w", program, err)
	}
	return nil
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
