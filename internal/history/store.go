// Package history records which targets the user launches, under which
// queries, and which folders they drill into. Every mutation is pruned and
// written through to disk before it returns.
package history

import (
	"cmp"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
	"github.com/kk-code-lab/rlaunch/internal/logging"
	"github.com/kk-code-lab/rlaunch/internal/query"
)

const (
	DefaultTopN       = 200
	DefaultMaxDisplay = 8
)

// Store holds usage history in memory and mirrors it to a file.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data Data

	path       string
	topN       int
	maxDisplay int
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTopN bounds how many targets and folders are retained.
func WithTopN(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMaxDisplay bounds RecentLaunches.
func WithMaxDisplay(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxDisplay = n
		}
	}
}

// WithClock overrides the time source for LastLaunched.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store that is never persisted.
func New(opts ...Option) *Store {
	s := &Store{
		data:       emptyData(),
		topN:       DefaultTopN,
		maxDisplay: DefaultMaxDisplay,
		now:        time.Now,
		log:        logging.ForComponent(logging.CompHistory),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the store from path. A missing file starts empty; a file that
// cannot be decoded is replaced with empty history right away.
func Open(path string, opts ...Option) *Store {
	s := New(opts...)
	s.path = path

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Debug("history_missing", slog.String("path", path))
		return s
	case err != nil:
		s.log.Warn("history_unreadable", slog.String("path", path), slog.String("error", err.Error()))
		return s
	}

	data, ok := Decode(raw)
	if !ok {
		s.log.Warn("history_corrupt_reset", slog.String("path", path))
		s.persistLocked()
		return s
	}
	s.data = data.clone()
	s.log.Debug("history_loaded", slog.Int("targets", len(s.data.Global)))
	return s
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// RecordLaunch counts a launch of path and, when query normalizes to
// something non-empty, a launch of path under that query.
func (s *Store) RecordLaunch(path, q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.data.Global[path]
	e.LaunchCount = saturatingInc(e.LaunchCount)
	e.LastLaunched = uint64(s.now().Unix())
	s.data.Global[path] = e

	if nq := query.Normalize(q); nq != "" {
		targets := s.data.Query[nq]
		if targets == nil {
			targets = make(map[string]uint32)
			s.data.Query[nq] = targets
		}
		targets[path] = saturatingInc(targets[path])
	}

	s.pruneLocked(path)
	s.persistLocked()
}

// RecordFolderExpansion counts one drill-down into folder.
func (s *Store) RecordFolderExpansion(folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.FolderExpansion[folder] = saturatingInc(s.data.FolderExpansion[folder])
	s.pruneLocked(folder)
	s.persistLocked()
}

// Forget removes every record of path.
func (s *Store) Forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Global, path)
	delete(s.data.FolderExpansion, path)
	for q, targets := range s.data.Query {
		delete(targets, path)
		if len(targets) == 0 {
			delete(s.data.Query, q)
		}
	}
	s.pruneLocked("")
	s.persistLocked()
}

// GlobalCount returns how often path was launched.
func (s *Store) GlobalCount(path string) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Global[path].LaunchCount
}

// QueryCount returns how often path was launched from query.
func (s *Store) QueryCount(q, path string) uint32 {
	nq := query.Normalize(q)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Query[nq][path]
}

// LastLaunched returns the Unix time of the latest launch of path.
func (s *Store) LastLaunched(path string) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.Global[path]
	return e.LastLaunched, ok
}

// FolderExpansionCount returns how often folder was drilled into.
func (s *Store) FolderExpansionCount(folder string) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.FolderExpansion[folder]
}

// RecentLaunches returns launched targets, most recent first (ties by path).
// A limit <= 0 means the display size; the result never exceeds it.
func (s *Store) RecentLaunches(limit int) []string {
	if limit <= 0 || limit > s.maxDisplay {
		limit = s.maxDisplay
	}

	s.mu.RLock()
	paths := slices.Collect(maps.Keys(s.data.Global))
	slices.SortFunc(paths, func(a, b string) int {
		ea, eb := s.data.Global[a], s.data.Global[b]
		if c := cmp.Compare(eb.LastLaunched, ea.LastLaunched); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	s.mu.RUnlock()

	if len(paths) > limit {
		paths = paths[:limit]
	}
	return paths
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Prune applies the retention bound without persisting.
func (s *Store) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked("")
}

// Save prunes and writes the store. Failures are logged, not returned.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked("")
	s.persistLocked()
}

// Close exists so callers can defer it; writes are already synchronous.
func (s *Store) Close() error {
	return nil
}

// pruneLocked applies the retention bound. Among equal counts the most
// recent launch survives, and fresh (the key just recorded, if any) wins
// ties, so a new target is never dropped by the call that added it.
func (s *Store) pruneLocked(fresh string) {
	if len(s.data.Global) > s.topN {
		rank := func(a, b string) int {
			ea, eb := s.data.Global[a], s.data.Global[b]
			if c := cmp.Compare(eb.LaunchCount, ea.LaunchCount); c != 0 {
				return c
			}
			if c := cmp.Compare(eb.LastLaunched, ea.LastLaunched); c != 0 {
				return c
			}
			return freshFirst(a, b, fresh)
		}
		for _, path := range overflow(s.data.Global, s.topN, rank) {
			delete(s.data.Global, path)
		}
	}
	for q, targets := range s.data.Query {
		for path := range targets {
			if _, ok := s.data.Global[path]; !ok {
				delete(targets, path)
			}
		}
		if len(targets) == 0 {
			delete(s.data.Query, q)
		}
	}
	if len(s.data.FolderExpansion) > s.topN {
		rank := func(a, b string) int {
			if c := cmp.Compare(s.data.FolderExpansion[b], s.data.FolderExpansion[a]); c != 0 {
				return c
			}
			return freshFirst(a, b, fresh)
		}
		for _, path := range overflow(s.data.FolderExpansion, s.topN, rank) {
			delete(s.data.FolderExpansion, path)
		}
	}
}

// overflow returns the keys ranked below keep under rank.
func overflow[V any](m map[string]V, keep int, rank func(a, b string) int) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, rank)
	return keys[keep:]
}

// freshFirst orders fresh before any other key, then keys ascending so the
// outcome does not depend on map iteration.
func freshFirst(a, b, fresh string) int {
	switch {
	case a == b:
		return 0
	case fresh != "" && a == fresh:
		return -1
	case fresh != "" && b == fresh:
		return 1
	}
	return cmp.Compare(a, b)
}

func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	if err := binfmt.Save(s.path, Magic, Version, s.data, Codec); err != nil {
		s.log.Warn("history_save_failed", slog.String("path", s.path), slog.String("error", err.Error()))
	}
}

func saturatingInc(n uint32) uint32 {
	if n == math.MaxUint32 {
		return n
	}
	return n + 1
}
