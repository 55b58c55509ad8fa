// Package config resolves marc settings from config.toml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultEditor  = "vi"
	DefaultRootDir = ".marc"
	ConfigFileName = "config.toml"
	DataFileName   = "todos.yaml"
)

// File is the on-disk config.toml.
type File struct {
	// DataFile overrides <root>/todos.yaml. Relative paths are joined to root.
	DataFile string `toml:"data_file"`

	// Editor overrides $EDITOR for `marc edit`.
	Editor string `toml:"editor"`

	// Color is auto, always or never.
	Color string `toml:"color"`

	// LogLevel is debug, info, warn, error or off.
	LogLevel string `toml:"log_level"`
}

// Env is the slice of the process environment marc reads.
type Env struct {
	Home     string
	MarcHome string
	Editor   string
	LogLevel string
	NoColor  bool
}

// Settings are the resolved values handed to the store, editor and logger.
type Settings struct {
	Root       string
	ConfigPath string
	DataFile   string
	Editor     string
	Color      string
	LogLevel   string
}

// EnvFromOS reads Env from the current process.
func EnvFromOS() Env {
	home, _ := os.UserHomeDir()
	_, noColor := os.LookupEnv("NO_COLOR")
	return Env{
		Home:     home,
		MarcHome: os.Getenv("MARC_HOME"),
		Editor:   os.Getenv("EDITOR"),
		LogLevel: os.Getenv("MARC_LOG_LEVEL"),
		NoColor:  noColor,
	}
}

// Resolve loads <root>/config.toml when present and merges it with env.
// Environment values win over the file except for the editor, where the
// file wins over $EDITOR.
func Resolve(env Env) (Settings, error) {
	root, err := rootDir(env)
	if err != nil {
		return Settings{}, err
	}
	cfgPath := filepath.Join(root, ConfigFileName)
	file, err := LoadFile(cfgPath)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Root:       root,
		ConfigPath: cfgPath,
		DataFile:   filepath.Join(root, DataFileName),
		Editor:     DefaultEditor,
		Color:      "auto",
		LogLevel:   "warn",
	}
	if df := strings.TrimSpace(file.DataFile); df != "" {
		df = expandHome(df, env.Home)
		if !filepath.IsAbs(df) {
			df = filepath.Join(root, df)
		}
		s.DataFile = df
	}
	if ed := strings.TrimSpace(env.Editor); ed != "" {
		s.Editor = ed
	}
	if ed := strings.TrimSpace(file.Editor); ed != "" {
		s.Editor = ed
	}
	if c, ok := normalizeColor(file.Color); ok {
		s.Color = c
	} else {
		return Settings{}, fmt.Errorf("%s: invalid color %q (use auto|always|never)", cfgPath, file.Color)
	}
	if env.NoColor {
		s.Color = "never"
	}
	if lvl := strings.TrimSpace(file.LogLevel); lvl != "" {
		s.LogLevel = lvl
	}
	if lvl := strings.TrimSpace(env.LogLevel); lvl != "" {
		s.LogLevel = lvl
	}
	return s, nil
}

// LoadFile decodes path. A missing file yields the zero File.
func LoadFile(path string) (File, error) {
	var f File
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return f, nil
}

func rootDir(env Env) (string, error) {
	if r := strings.TrimSpace(env.MarcHome); r != "" {
		return expandHome(r, env.Home), nil
	}
	if strings.TrimSpace(env.Home) == "" {
		return "", errors.New("cannot locate home directory (set HOME or MARC_HOME)")
	}
	return filepath.Join(env.Home, DefaultRootDir), nil
}

func normalizeColor(c string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "", "auto":
		return "auto", true
	case "always", "on", "true":
		return "always", true
	case "never", "off", "false":
		return "never", true
	default:
		return "", false
	}
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
