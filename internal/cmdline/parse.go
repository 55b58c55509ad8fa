package cmdline

import (
	"errors"
	"fmt"
	"strings"
)

const (
	longPrefix  = "--"
	shortPrefix = "-"
)

var (
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrUnknownArgument   = errors.New("unknown argument")
	ErrMissingValue      = errors.New("missing value")
)

type ParseErrorKind int

const (
	UnknownSubcommand ParseErrorKind = iota
	UnknownArgument
	MissingValue
)

// ParseError reports a token the parser could not classify. It satisfies
// errors.Is for the sentinel matching its Kind.
type ParseError struct {
	Kind       ParseErrorKind
	Token      string
	Subcommand Subcommand
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownArgument:
		return fmt.Sprintf("unknown argument %q for %s", e.Token, e.Subcommand)
	case MissingValue:
		return fmt.Sprintf("switch %q requires a value", e.Token)
	default:
		return fmt.Sprintf("unknown subcommand %q", e.Token)
	}
}

func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case UnknownArgument:
		return target == ErrUnknownArgument
	case MissingValue:
		return target == ErrMissingValue
	default:
		return target == ErrUnknownSubcommand
	}
}

type ArgType int

const (
	ArgValue ArgType = iota
	ArgFlag
	ArgOption
)

// Arg is one classified token. Name is empty for values; Value is empty for flags.
type Arg struct {
	Type  ArgType
	Name  string
	Value string
}

func Option(name, value string) Arg { return Arg{Type: ArgOption, Name: name, Value: value} }
func Flag(name string) Arg          { return Arg{Type: ArgFlag, Name: name} }
func Value(raw string) Arg          { return Arg{Type: ArgValue, Value: raw} }

func (a Arg) String() string {
	switch a.Type {
	case ArgOption:
		return fmt.Sprintf("Option{%s,%s}", a.Name, a.Value)
	case ArgFlag:
		return fmt.Sprintf("Flag(%s)", a.Name)
	default:
		return fmt.Sprintf("Value(%q)", a.Value)
	}
}

type Args []Arg

// Option returns the value of the first option called name.
func (args Args) Option(name string) (string, bool) {
	for _, a := range args {
		if a.Type == ArgOption && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (args Args) Flag(name string) bool {
	for _, a := range args {
		if a.Type == ArgFlag && a.Name == name {
			return true
		}
	}
	return false
}

// Values returns the positional values in order.
func (args Args) Values() []string {
	var out []string
	for _, a := range args {
		if a.Type == ArgValue {
			out = append(out, a.Value)
		}
	}
	return out
}

type CommandLine struct {
	Subcommand Subcommand
	Args       Args
}

// Parse resolves the subcommand from the first token and classifies the rest.
// tokens must not include the program name.
func Parse(tokens []string) (CommandLine, error) {
	if len(tokens) == 0 {
		return CommandLine{Subcommand: Help}, nil
	}
	cmd, err := ParseSubcommand(tokens[0])
	if err != nil {
		return CommandLine{}, err
	}
	args, err := ParseArgs(cmd, tokens[1:])
	if err != nil {
		return CommandLine{}, err
	}
	return CommandLine{Subcommand: cmd, Args: args}, nil
}

// ParseArgs classifies tokens against the specs of cmd in a single
// left-to-right pass. Options consume the next unconsumed token as value.
func ParseArgs(cmd Subcommand, tokens []string) (Args, error) {
	var flags, options []ArgSpec
	for _, spec := range SpecsFor(cmd) {
		if spec.Kind == KindFlag {
			flags = append(flags, spec)
		} else {
			options = append(options, spec)
		}
	}

	args := Args{}
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case strings.HasPrefix(token, longPrefix):
			name := strings.TrimPrefix(token, longPrefix)
			if spec, ok := findLong(flags, name); ok {
				args = append(args, Flag(spec.Name))
				continue
			}
			spec, ok := findLong(options, name)
			if !ok {
				return nil, &ParseError{Kind: UnknownArgument, Token: token, Subcommand: cmd}
			}
			if i+1 >= len(tokens) {
				return nil, &ParseError{Kind: MissingValue, Token: name, Subcommand: cmd}
			}
			i++
			args = append(args, Option(spec.Name, tokens[i]))
		case strings.HasPrefix(token, shortPrefix) && token != shortPrefix:
			for _, r := range strings.TrimPrefix(token, shortPrefix) {
				if spec, ok := findShort(flags, r); ok {
					args = append(args, Flag(spec.Name))
					continue
				}
				spec, ok := findShort(options, r)
				if !ok {
					return nil, &ParseError{Kind: UnknownArgument, Token: shortPrefix + string(r), Subcommand: cmd}
				}
				if i+1 >= len(tokens) {
					return nil, &ParseError{Kind: MissingValue, Token: string(r), Subcommand: cmd}
				}
				i++
				args = append(args, Option(spec.Name, tokens[i]))
			}
		default:
			args = append(args, Value(token))
		}
	}
	return args, nil
}

func findLong(specs []ArgSpec, long string) (ArgSpec, bool) {
	for _, s := range specs {
		if s.Long == long {
			return s, true
		}
	}
	return ArgSpec{}, false
}

func findShort(specs []ArgSpec, short rune) (ArgSpec, bool) {
	for _, s := range specs {
		if s.Short == short {
			return s, true
		}
	}
	return ArgSpec{}, false
}
