package cmdline

import (
	"fmt"
	"strings"
)

var synopses = map[Subcommand]string{
	Add:     "add [--tag|-t NAME] <text>...",
	Log:     "log [--tag|-t NAME] [--done|-d] [--undone|-u] [--json|-j]",
	Remove:  "rm [--done|-d] <hashPrefix>...",
	Done:    "done <hashPrefix>...",
	Edit:    "edit",
	Help:    "help",
	Version: "version",
}

var summaries = map[Subcommand]string{
	Add:     "Add one todo per text argument",
	Log:     "List todos",
	Remove:  "Remove todos by hash prefix",
	Done:    "Mark todos as completed by hash prefix",
	Edit:    "Reorder or drop todos in $EDITOR",
	Help:    "Show this help",
	Version: "Print the version",
}

func Synopsis(cmd Subcommand) string {
	return synopses[cmd]
}

func Summary(cmd Subcommand) string {
	return summaries[cmd]
}

// Usage renders the help text of a single subcommand from its spec table.
func Usage(program string, cmd Subcommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage:\n  %s %s\n\n%s\n", program, Synopsis(cmd), Summary(cmd))
	specs := SpecsFor(cmd)
	b.WriteString("\nFlags:\n")
	for _, s := range specs {
		switch s.Kind {
		case KindOption:
			fmt.Fprintf(&b, "  -%c, --%-8s %s\n", s.Short, s.Long+" V", s.Usage)
		default:
			fmt.Fprintf(&b, "  -%c, --%-8s %s\n", s.Short, s.Long, s.Usage)
		}
	}
	return b.String()
}
