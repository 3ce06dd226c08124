// Package activity writes dated markdown notes into the managed repository.
//
// Notes live at <root>/<YYYY>/<MM>/<DD>.md. The first write of a day
// creates the file with a date heading; later writes the same day append
// a timestamped update block.
package activity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fenwood/moss/internal/output"
)

const (
	headingLayout = "02.01.06"
	updLayout     = "15:04"
)

// Store writes activity notes under a repository root.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the repository working tree.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// RelPath returns the note path for the timestamp relative to the
// repository root, "YYYY/MM/DD.md".
func RelPath(when time.Time) string {
	return filepath.Join(when.Format("2006"), when.Format("01"), when.Format("02")+".md")
}

// Path returns the absolute note path for the timestamp.
func (s *Store) Path(when time.Time) string {
	return filepath.Join(s.root, RelPath(when))
}

// Exists reports whether a note exists for the timestamp's date.
func (s *Store) Exists(when time.Time) bool {
	info, err := os.Stat(s.Path(when))
	return err == nil && info.Size() > 0
}

// Write records content in the note for when's date and returns the
// note's path. A missing or empty file gets a date heading; an existing
// file gets an update block stamped with when's clock time. Concurrent
// writers are unsupported.
func (s *Store) Write(content string, when time.Time) (string, error) {
	path := s.Path(when)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create activity directory", err)
	}

	info, statErr := os.Stat(path)
	if errors.Is(statErr, os.ErrNotExist) || (statErr == nil && info.Size() == 0) {
		note := fmt.Sprintf("# %s\n\n%s\n", when.Format(headingLayout), content)
		if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
			return "", output.NewSystemErrorWithCause("failed to write activity file "+path, err)
		}
		return path, nil
	}
	if statErr != nil {
		return "", output.NewSystemErrorWithCause("failed to stat activity file "+path, statErr)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to open activity file "+path, err)
	}
	upd := fmt.Sprintf("\n<hr>\n\n_UPD (%s):_\n\n%s\n", when.Format(updLayout), content)
	if _, err := f.WriteString(upd); err != nil {
		_ = f.Close()
		return "", output.NewSystemErrorWithCause("failed to append to activity file "+path, err)
	}
	if err := f.Close(); err != nil {
		return "", output.NewSystemErrorWithCause("failed to close activity file "+path, err)
	}
	return path, nil
}

// Read returns the note contents for when's date. A missing note is a
// user error so the CLI can report it without a stack of wrapping.
func (s *Store) Read(when time.Time) (string, error) {
	path := s.Path(when)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", output.NewUserError("no activity recorded for " + when.Format("2006-01-02"))
		}
		return "", output.NewSystemErrorWithCause("failed to read activity file "+path, err)
	}
	return string(data), nil
}
