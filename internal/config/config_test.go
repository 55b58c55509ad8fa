package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, root, body string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	home := t.TempDir()
	s, err := Resolve(Env{Home: home})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	root := filepath.Join(home, ".marc")
	if s.Root != root {
		t.Fatalf("root = %q, want %q", s.Root, root)
	}
	if s.DataFile != filepath.Join(root, "todos.yaml") {
		t.Fatalf("data file = %q", s.DataFile)
	}
	if s.Editor != "vi" || s.Color != "auto" || s.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestResolveEnvOverrides(t *testing.T) {
	home := t.TempDir()
	custom := filepath.Join(home, "elsewhere")
	s, err := Resolve(Env{Home: home, MarcHome: custom, Editor: "nano", LogLevel: "debug", NoColor: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Root != custom {
		t.Fatalf("root = %q, want %q", s.Root, custom)
	}
	if s.Editor != "nano" || s.LogLevel != "debug" || s.Color != "never" {
		t.Fatalf("env not applied: %+v", s)
	}
}

func TestResolveFileValues(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".marc")
	writeConfig(t, root, `
data_file = "lists/main.yaml"
editor = "code --wait"
color = "always"
log_level = "info"
`)
	s, err := Resolve(Env{Home: home, Editor: "nano"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.DataFile != filepath.Join(root, "lists", "main.yaml") {
		t.Fatalf("data file = %q", s.DataFile)
	}
	if s.Editor != "code --wait" {
		t.Fatalf("config editor should win over $EDITOR, got %q", s.Editor)
	}
	if s.Color != "always" || s.LogLevel != "info" {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestResolveExpandsHomeInDataFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".marc"), `data_file = "~/todo.yaml"`)
	s, err := Resolve(Env{Home: home})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.DataFile != filepath.Join(home, "todo.yaml") {
		t.Fatalf("data file = %q", s.DataFile)
	}
}

func TestResolveRejectsMalformedConfig(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".marc"), "editor = [")
	_, err := Resolve(Env{Home: home})
	if err == nil || !strings.Contains(err.Error(), ConfigFileName) {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestResolveRejectsUnknownKeysAndColors(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".marc")
	writeConfig(t, root, `editr = "vim"`)
	if _, err := Resolve(Env{Home: home}); err == nil {
		t.Fatal("expected unknown key error")
	}
	writeConfig(t, root, `color = "rainbow"`)
	if _, err := Resolve(Env{Home: home}); err == nil {
		t.Fatal("expected invalid color error")
	}
}

func TestResolveWithoutHome(t *testing.T) {
	if _, err := Resolve(Env{}); err == nil {
		t.Fatal("expected error without HOME or MARC_HOME")
	}
}
