package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/marc/internal/logging"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalid          = errors.New("invalid")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrEmpty            = errors.New("no todos")
	ErrCorrupt          = errors.New("corrupt data file")
	timeNow             = func() time.Time { return time.Now().UTC() }
)

const DefaultTag = "default"

// MatchConflictError reports a hash prefix that matches more than one item.
// It still satisfies errors.Is(err, ErrConflict).
type MatchConflictError struct {
	Prefix  string
	Matches []Item
}

func (e *MatchConflictError) Error() string {
	if e == nil || strings.TrimSpace(e.Prefix) == "" {
		return "conflict"
	}
	return fmt.Sprintf("conflict: prefix %q matches %d todos", e.Prefix, len(e.Matches))
}

func (e *MatchConflictError) Is(target error) bool {
	return target == ErrConflict
}

type Item struct {
	Hash        string `yaml:"hash" json:"hash"`
	Description string `yaml:"description" json:"description"`
	Completed   bool   `yaml:"completed" json:"completed"`
	Tag         string `yaml:"tag" json:"tag"`
}

type document struct {
	Todos []Item `yaml:"todos"`
}

// Store is the todo list of one data file. It is loaded wholesale by Open and
// written back wholesale by Save.
type Store struct {
	fs    afero.Fs
	path  string
	items []Item
}

// Open loads the data file at path. A missing or blank file yields an empty list.
func Open(fsys afero.Fs, path string) (*Store, error) {
	s := &Store{fs: fsys, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Items returns a copy of the list in display order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

// Replace swaps the whole list. Items must satisfy the store invariants.
func (s *Store) Replace(items []Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	s.items = make([]Item, len(items))
	copy(s.items, items)
	return nil
}

func (s *Store) load() error {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug().Str("path", s.path).Msg("data file missing, starting empty")
			s.items = nil
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		s.items = nil
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w %s: %v", ErrCorrupt, s.path, err)
	}
	if err := validateItems(doc.Todos); err != nil {
		return fmt.Errorf("%w %s: %v", ErrCorrupt, s.path, err)
	}
	s.items = doc.Todos
	logging.Debug().Str("path", s.path).Int("items", len(s.items)).Msg("loaded todos")
	return nil
}

// Save overwrites the data file with the whole list.
func (s *Store) Save() error {
	doc := document{Todos: s.items}
	if doc.Todos == nil {
		doc.Todos = []Item{}
	}
	b, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err := atomicWriteFile(s.fs, s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	logging.Debug().Str("path", s.path).Int("items", len(s.items)).Msg("saved todos")
	return nil
}

func validateItems(items []Item) error {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("%w: todo %d has an empty description", ErrInvalid, i+1)
		}
		if strings.TrimSpace(it.Hash) == "" {
			return fmt.Errorf("%w: todo %d has no hash", ErrInvalid, i+1)
		}
		if seen[it.Hash] {
			return fmt.Errorf("%w: duplicate hash %s", ErrInvalid, it.Hash)
		}
		seen[it.Hash] = true
	}
	return nil
}

func atomicWriteFile(fsys afero.Fs, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = fsys.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	_ = fsys.Chmod(tmpPath, perm)
	// Rename is atomic on the same filesystem.
	if err := fsys.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}
