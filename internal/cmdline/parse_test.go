package cmdline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLongOption(t *testing.T) {
	line, err := Parse([]string{"add", "--tag", "test", "should work"})
	require.NoError(t, err)
	assert.Equal(t, Add, line.Subcommand)
	assert.Equal(t, Args{Option("tag", "test"), Value("should work")}, line.Args)
}

func TestParseShortOptionMatchesLong(t *testing.T) {
	long, err := Parse([]string{"add", "--tag", "test", "should work"})
	require.NoError(t, err)
	short, err := Parse([]string{"add", "-t", "test", "should work"})
	require.NoError(t, err)
	assert.Equal(t, long, short)
}

func TestParseConcatenatedShortFlags(t *testing.T) {
	line, err := Parse([]string{"log", "-ud"})
	require.NoError(t, err)
	assert.Equal(t, Log, line.Subcommand)
	assert.Equal(t, Args{Flag("undone"), Flag("done")}, line.Args)
}

func TestParseClusterOptionTakesTokenAfterCluster(t *testing.T) {
	args, err := ParseArgs(Log, []string{"-dt", "work", "-u"})
	require.NoError(t, err)
	assert.Equal(t, Args{Flag("done"), Option("tag", "work"), Flag("undone")}, args)
}

func TestParseUnknownLongArgument(t *testing.T) {
	_, err := Parse([]string{"log", "--pippo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArgument))
	assert.Equal(t, `unknown argument "--pippo" for log`, err.Error())
}

func TestParseUnknownShortArgument(t *testing.T) {
	_, err := ParseArgs(Done, []string{"-x"})
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnknownArgument, perr.Kind)
	assert.Equal(t, "-x", perr.Token)
	assert.Equal(t, Done, perr.Subcommand)
}

func TestParseMissingValue(t *testing.T) {
	_, err := Parse([]string{"add", "--tag"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
	assert.Equal(t, `switch "tag" requires a value`, err.Error())

	_, err = Parse([]string{"add", "-t"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
	assert.Contains(t, err.Error(), `"t"`)
}

func TestParseOptionValueIsVerbatim(t *testing.T) {
	args, err := ParseArgs(Add, []string{"--tag", "--done"})
	require.NoError(t, err)
	assert.Equal(t, Args{Option("tag", "--done")}, args)
}

func TestParseImplicitHelp(t *testing.T) {
	for _, cmd := range Subcommands() {
		args, err := ParseArgs(cmd, []string{"--help", "-h"})
		require.NoError(t, err, cmd.String())
		assert.Equal(t, Args{Flag("help"), Flag("help")}, args)
	}
}

func TestParseLoneDashIsValue(t *testing.T) {
	args, err := ParseArgs(Add, []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, Args{Value("-")}, args)
}

func TestParseDoubleDashAloneIsUnknown(t *testing.T) {
	_, err := ParseArgs(Add, []string{"--"})
	assert.True(t, errors.Is(err, ErrUnknownArgument))
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := [][]string{
		{"add", "-t", "x", "a", "b"},
		{"log", "-udj", "--tag", "home"},
		{"rm", "-d", "abc", "de"},
		{"done", "1a2b"},
	}
	for _, in := range inputs {
		first, err := Parse(in)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, first, again, strings.Join(in, " "))
		}
	}
}

func TestParseSubcommandAliases(t *testing.T) {
	cases := map[string]Subcommand{
		"ADD":       Add,
		"rm":        Remove,
		"Remove":    Remove,
		"ls":        Log,
		"--help":    Help,
		"-h":        Help,
		"--version": Version,
		"v":         Version,
	}
	for token, want := range cases {
		got, err := ParseSubcommand(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
	_, err := ParseSubcommand("frobnicate")
	assert.True(t, errors.Is(err, ErrUnknownSubcommand))
	assert.Equal(t, `unknown subcommand "frobnicate"`, err.Error())
}

func TestParseEmptyIsHelp(t *testing.T) {
	line, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Help, line.Subcommand)
}

func TestArgsAccessors(t *testing.T) {
	args := Args{Option("tag", "work"), Flag("done"), Value("a"), Value("b")}
	tag, ok := args.Option("tag")
	assert.True(t, ok)
	assert.Equal(t, "work", tag)
	_, ok = args.Option("missing")
	assert.False(t, ok)
	assert.True(t, args.Flag("done"))
	assert.False(t, args.Flag("undone"))
	assert.Equal(t, []string{"a", "b"}, args.Values())
}

func TestSpecTableAliasesAreDisjoint(t *testing.T) {
	for _, cmd := range Subcommands() {
		shorts := map[rune]string{}
		longs := map[string]string{}
		for _, s := range SpecsFor(cmd) {
			if prev, ok := shorts[s.Short]; ok {
				t.Fatalf("%s: short alias %q used by %s and %s", cmd, s.Short, prev, s.Name)
			}
			if prev, ok := longs[s.Long]; ok {
				t.Fatalf("%s: long alias %q used by %s and %s", cmd, s.Long, prev, s.Name)
			}
			shorts[s.Short] = s.Name
			longs[s.Long] = s.Name
		}
	}
}

func TestUsageListsSpecs(t *testing.T) {
	out := Usage("marc", Log)
	assert.Contains(t, out, "marc log")
	assert.Contains(t, out, "--undone")
	assert.Contains(t, out, "--help")
}
