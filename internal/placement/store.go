package placement

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
	"github.com/kk-code-lab/rlaunch/internal/logging"
)

// Store reads and updates window.bin. Each setter rewrites the whole file
// and leaves the other fields as they were.
type Store struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, log: logging.ForComponent(logging.CompPlacement)}
}

// Load returns the stored state; missing or unreadable files yield an empty
// State.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// SetSearch records the search window position.
func (s *Store) SetSearch(p Point) error {
	return s.update(func(st *State) { st.Search = &p })
}

// SetSettings records the settings window position.
func (s *Store) SetSettings(p Point) error {
	return s.update(func(st *State) { st.Settings = &p })
}

// SetSettingsSize records the settings window size.
func (s *Store) SetSettingsSize(size Size) error {
	return s.update(func(st *State) { st.SettingsSize = &size })
}

func (s *Store) update(apply func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.loadLocked()
	apply(&st)
	if err := binfmt.WriteFile(s.path, Encode(st)); err != nil {
		return fmt.Errorf("save window placement: %w", err)
	}
	return nil
}

func (s *Store) loadLocked() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("placement_unreadable", slog.String("path", s.path), slog.String("error", err.Error()))
		}
		return State{}
	}
	st, ok := Decode(data)
	if !ok {
		s.log.Warn("placement_corrupt", slog.String("path", s.path))
		return State{}
	}
	return st
}
