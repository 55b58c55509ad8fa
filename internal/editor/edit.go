package editor

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/amirbrooks/marc/internal/logging"
	"github.com/amirbrooks/marc/internal/store"
)

var (
	ErrNothingToEdit = fmt.Errorf("%w: nothing to edit, add a todo first with `marc add`", store.ErrEmpty)
	ErrEditorFailed  = errors.New("editor failed")
)

// Bridge runs the edit workflow. TempDir may be empty for the system default.
type Bridge struct {
	FS       afero.Fs
	TempDir  string
	Launcher Launcher
}

type Result struct {
	Before  int
	After   int
	Dropped int
}

// Edit writes the list to a scratch file, waits for the editor, and replaces
// the store's items with the re-ingested list before saving. Nothing is saved
// when the editor fails.
func (b *Bridge) Edit(s *store.Store) (Result, error) {
	original := s.Items()
	if len(original) == 0 {
		return Result{}, ErrNothingToEdit
	}

	tmp, err := afero.TempFile(b.FS, b.TempDir, "marc-edit-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("create scratch file: %w", err)
	}
	path := tmp.Name()
	defer func() { _ = b.FS.Remove(path) }()

	if _, err := tmp.WriteString(Render(original)); err != nil {
		_ = tmp.Close()
		return Result{}, fmt.Errorf("write scratch file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close scratch file %s: %w", path, err)
	}

	if err := b.Launcher.Launch(path); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEditorFailed, err)
	}

	edited, err := afero.ReadFile(b.FS, path)
	if err != nil {
		return Result{}, fmt.Errorf("read scratch file %s: %w", path, err)
	}
	items := Parse(string(edited), original)
	logging.Debug().Int("before", len(original)).Int("after", len(items)).Msg("re-ingested scratch buffer")

	if err := s.Replace(items); err != nil {
		return Result{}, err
	}
	if err := s.Save(); err != nil {
		return Result{}, err
	}
	return Result{Before: len(original), After: len(items), Dropped: len(original) - len(items)}, nil
}
