package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/amirbrooks/marc/internal/cmdline"
)

// stdinIsPiped reports whether f is a pipe or regular file rather than a
// terminal or an inherited character device.
func stdinIsPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	mode := st.Mode()
	return mode&os.ModeNamedPipe != 0 || mode.IsRegular()
}

func acceptsPipedInput(cmd cmdline.Subcommand) bool {
	switch cmd {
	case cmdline.Add, cmdline.Remove, cmdline.Done:
		return true
	default:
		return false
	}
}

// readPipedTokens returns the trimmed non-empty lines of r.
func readPipedTokens(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
