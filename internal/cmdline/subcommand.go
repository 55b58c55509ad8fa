// Package cmdline resolves subcommands and classifies raw tokens into flags,
// options and positional values against a static per-subcommand spec table.
package cmdline

import "strings"

type Subcommand int

const (
	Add Subcommand = iota
	Log
	Remove
	Edit
	Done
	Help
	Version
)

var subcommandNames = map[Subcommand]string{
	Add:     "add",
	Log:     "log",
	Remove:  "rm",
	Edit:    "edit",
	Done:    "done",
	Help:    "help",
	Version: "version",
}

var subcommandAliases = map[string]Subcommand{
	"add":       Add,
	"log":       Log,
	"ls":        Log,
	"rm":        Remove,
	"remove":    Remove,
	"edit":      Edit,
	"done":      Done,
	"help":      Help,
	"--help":    Help,
	"-h":        Help,
	"version":   Version,
	"--version": Version,
	"-v":        Version,
	"v":         Version,
}

// Subcommands lists every subcommand in help order.
func Subcommands() []Subcommand {
	return []Subcommand{Add, Log, Remove, Done, Edit, Help, Version}
}

func (s Subcommand) String() string {
	if name, ok := subcommandNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSubcommand maps a token to a subcommand, ignoring case.
func ParseSubcommand(token string) (Subcommand, error) {
	if cmd, ok := subcommandAliases[strings.ToLower(strings.TrimSpace(token))]; ok {
		return cmd, nil
	}
	return 0, &ParseError{Kind: UnknownSubcommand, Token: token}
}
