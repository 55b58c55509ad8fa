// Package editor round-trips the todo list through a scratch file opened in
// an external editor, so todos can be reordered or dropped by editing lines.
package editor

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirbrooks/marc/internal/store"
)

const (
	VerbPick      = "pick"
	VerbPickShort = "p"
	VerbDrop      = "drop"
	VerbDropShort = "d"
)

const helpBlock = `# Commands:
# p, pick <index> = keep todo
# d, drop <index> = remove todo
#
# Lines are applied top to bottom, so reordering lines reorders todos.
# Deleting a line also removes its todo.
# Lines starting with '#' are ignored.
`

// Render writes one directive line per item followed by the help block.
func Render(items []store.Item) string {
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%s %d %s\n", VerbPick, i+1, singleLine(it.Description))
	}
	b.WriteString("\n")
	b.WriteString(helpBlock)
	return b.String()
}

// Parse rebuilds the list from an edited buffer. Malformed lines, unknown
// indexes and repeated indexes are skipped; any verb other than drop keeps
// the original item unchanged.
func Parse(buffer string, original []store.Item) []store.Item {
	out := []store.Item{}
	used := make(map[int]bool, len(original))
	sc := bufio.NewScanner(strings.NewReader(buffer))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line, 3)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(original) {
			continue
		}
		idx := n - 1
		if used[idx] {
			continue
		}
		used[idx] = true
		if isDrop(fields[0]) {
			continue
		}
		out = append(out, original[idx])
	}
	return out
}

func isDrop(verb string) bool {
	switch strings.ToLower(verb) {
	case VerbDrop, VerbDropShort:
		return true
	default:
		return false
	}
}

// splitFields splits on whitespace into at most n fields; the last field
// keeps the remainder of the line.
func splitFields(line string, n int) []string {
	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" && len(out) < n-1 {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			break
		}
		out = append(out, rest[:i])
		rest = strings.TrimLeft(rest[i:], " \t")
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
