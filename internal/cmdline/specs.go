package cmdline

type ArgKind int

const (
	KindFlag ArgKind = iota
	KindOption
)

func (k ArgKind) String() string {
	if k == KindOption {
		return "option"
	}
	return "flag"
}

// ArgSpec declares one switch accepted by a subcommand. Flags carry no value;
// options take exactly one following token.
type ArgSpec struct {
	Name  string
	Short rune
	Long  string
	Kind  ArgKind
	Usage string
}

var helpSpec = ArgSpec{Name: "help", Short: 'h', Long: "help", Kind: KindFlag, Usage: "Show help for the command"}

// Flags and options of one subcommand must use disjoint aliases.
var argSpecs = map[Subcommand][]ArgSpec{
	Add: {
		{Name: "tag", Short: 't', Long: "tag", Kind: KindOption, Usage: "Tag for the new todos (default \"default\")"},
	},
	Log: {
		{Name: "tag", Short: 't', Long: "tag", Kind: KindOption, Usage: "Only show todos with this tag"},
		{Name: "done", Short: 'd', Long: "done", Kind: KindFlag, Usage: "Only show completed todos"},
		{Name: "undone", Short: 'u', Long: "undone", Kind: KindFlag, Usage: "Only show open todos"},
		{Name: "json", Short: 'j', Long: "json", Kind: KindFlag, Usage: "Print todos as JSON"},
	},
	Remove: {
		{Name: "done", Short: 'd', Long: "done", Kind: KindFlag, Usage: "Remove every completed todo"},
	},
	Edit:    {},
	Done:    {},
	Help:    {},
	Version: {},
}

// SpecsFor returns the specs accepted by cmd, including the implicit help flag.
func SpecsFor(cmd Subcommand) []ArgSpec {
	declared := argSpecs[cmd]
	out := make([]ArgSpec, 0, len(declared)+1)
	out = append(out, declared...)
	out = append(out, helpSpec)
	return out
}
