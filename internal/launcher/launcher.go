// Package launcher ties the index, history and search engine together for
// the user-facing layers: it answers queries, browses folders, launches
// results and rebuilds the catalog in the background.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/rlaunch/internal/config"
	"github.com/kk-code-lab/rlaunch/internal/history"
	"github.com/kk-code-lab/rlaunch/internal/index"
	"github.com/kk-code-lab/rlaunch/internal/logging"
	"github.com/kk-code-lab/rlaunch/internal/search"
)

// Launcher is safe for concurrent use. Engines are immutable and replaced
// wholesale after a rebuild.
type Launcher struct {
	dir            string
	indexer        *index.Indexer
	opener         Opener
	log            *slog.Logger
	onIndexChanged func([]index.Entry)

	mu      sync.RWMutex
	cfg     config.Config
	engine  *search.Engine
	history *history.Store

	rebuilding atomic.Bool
	scanMu     sync.Mutex
	cancelScan context.CancelFunc
	scanDone   chan struct{}
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithOpener replaces the platform opener.
func WithOpener(o Opener) Option {
	return func(l *Launcher) {
		if o != nil {
			l.opener = o
		}
	}
}

// WithIndexer replaces the indexer built from the config directory.
func WithIndexer(ix *index.Indexer) Option {
	return func(l *Launcher) {
		if ix != nil {
			l.indexer = ix
		}
	}
}

// WithHistory supplies a history store instead of loading one in Open.
func WithHistory(h *history.Store) Option {
	return func(l *Launcher) {
		l.history = h
	}
}

// WithLogger replaces the component logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Launcher) {
		if log != nil {
			l.log = log
		}
	}
}

// WithOnIndexChanged registers a hook called with the new catalog whenever
// a scan produced something different from the cache.
func WithOnIndexChanged(fn func([]index.Entry)) Option {
	return func(l *Launcher) {
		l.onIndexChanged = fn
	}
}

// New returns a launcher persisting under dir. An empty dir keeps
// everything in memory. Call Open before serving queries.
func New(dir string, cfg config.Config, opts ...Option) *Launcher {
	l := &Launcher{
		dir:    dir,
		cfg:    cfg,
		engine: search.NewEngine(nil),
		opener: NewCommandOpener(),
		log:    logging.ForComponent(logging.CompLauncher),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.indexer == nil {
		l.indexer = index.New(l.filePath(index.CacheFileName))
	}
	return l
}

func (l *Launcher) filePath(name string) string {
	if l.dir == "" {
		return ""
	}
	return filepath.Join(l.dir, name)
}

func historyOptions(cfg config.Config) []history.Option {
	return []history.Option{
		history.WithTopN(cfg.Appearance.TopNHistory),
		history.WithMaxDisplay(cfg.Appearance.MaxHistoryDisplay),
	}
}

func (l *Launcher) openHistory(cfg config.Config) *history.Store {
	opts := historyOptions(cfg)
	if path := l.filePath(history.FileName); path != "" {
		return history.Open(path, opts...)
	}
	return history.New(opts...)
}

// Open loads history and refreshes the catalog concurrently.
func (l *Launcher) Open(ctx context.Context) error {
	cfg := l.Config()
	g, gctx := errgroup.WithContext(ctx)

	var store *history.Store
	if l.History() == nil {
		g.Go(func() error {
			store = l.openHistory(cfg)
			return nil
		})
	}

	var (
		entries []index.Entry
		changed bool
	)
	g.Go(func() error {
		var err error
		entries, changed, err = l.indexer.LoadOrRescan(gctx, cfg.Rules())
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("open launcher: %w", err)
	}

	l.mu.Lock()
	if store != nil {
		l.history = store
	}
	l.engine = search.NewEngine(entries)
	l.mu.Unlock()

	l.log.Info("launcher_opened", slog.Int("entries", len(entries)), slog.Bool("changed", changed))
	if changed {
		l.notifyChanged(entries)
	}
	return nil
}

// StartRebuild rescans in the background and swaps in the new catalog.
// It returns false without starting anything while another rebuild is in
// flight. The channel closes when the rebuild finishes or is abandoned.
func (l *Launcher) StartRebuild(ctx context.Context) (<-chan struct{}, bool) {
	if !l.rebuilding.CompareAndSwap(false, true) {
		return nil, false
	}

	scanCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.scanMu.Lock()
	l.cancelScan, l.scanDone = cancel, done
	l.scanMu.Unlock()

	rules := l.Config().Rules()
	go func() {
		defer close(done)
		defer l.rebuilding.Store(false)
		defer func() {
			l.scanMu.Lock()
			l.cancelScan, l.scanDone = nil, nil
			l.scanMu.Unlock()
			cancel()
		}()

		entries, err := l.indexer.ForceRebuild(scanCtx, rules)
		if err != nil {
			l.log.Info("rebuild_abandoned", slog.String("error", err.Error()))
			return
		}
		l.swap(entries)
		l.notifyChanged(entries)
	}()
	return done, true
}

// Rebuilding reports whether a background rebuild is in flight.
func (l *Launcher) Rebuilding() bool {
	return l.rebuilding.Load()
}

// Rebuild rescans synchronously, replacing the cache and the catalog.
func (l *Launcher) Rebuild(ctx context.Context) ([]index.Entry, error) {
	entries, err := l.indexer.ForceRebuild(ctx, l.Config().Rules())
	if err != nil {
		return nil, err
	}
	l.swap(entries)
	l.notifyChanged(entries)
	return entries, nil
}

func (l *Launcher) cancelRebuild() {
	l.scanMu.Lock()
	cancel, done := l.cancelScan, l.scanDone
	l.scanMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *Launcher) swap(entries []index.Entry) {
	engine := search.NewEngine(entries)
	l.mu.Lock()
	l.engine = engine
	l.mu.Unlock()
	l.log.Debug("engine_swapped", slog.Int("entries", len(entries)))
}

func (l *Launcher) notifyChanged(entries []index.Entry) {
	if l.onIndexChanged != nil {
		l.onIndexChanged(entries)
	}
}

// UpdateConfig applies cfg. History bounds take effect immediately for a
// persisted store, which is reloaded from disk; when
// the scan rules changed, any in-flight rebuild is abandoned and a new one
// is started, whose completion channel is returned.
func (l *Launcher) UpdateConfig(ctx context.Context, cfg config.Config) (<-chan struct{}, bool) {
	l.mu.Lock()
	old := l.cfg
	l.cfg = cfg
	if l.history != nil && l.history.Path() != "" && old.Appearance != cfg.Appearance {
		l.history = history.Open(l.history.Path(), historyOptions(cfg)...)
	}
	l.mu.Unlock()

	if index.ConfigHash(old.Rules()) == index.ConfigHash(cfg.Rules()) {
		return nil, false
	}
	l.cancelRebuild()
	return l.StartRebuild(ctx)
}

// Config returns the active configuration.
func (l *Launcher) Config() config.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// Engine returns the current catalog snapshot.
func (l *Launcher) Engine() *search.Engine {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.engine
}

// History returns the history store, or nil before Open.
func (l *Launcher) History() *history.Store {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.history
}

func (l *Launcher) snapshot() (config.Config, *search.Engine, search.History) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.history == nil {
		return l.cfg, l.engine, nil
	}
	return l.cfg, l.engine, l.history
}

// Search ranks the catalog against q.
func (l *Launcher) Search(q string) []search.Result {
	cfg, engine, h := l.snapshot()
	return engine.Search(q, cfg.Appearance.MaxResults, h, cfg.NormalMode())
}

// Recent lists recently launched catalog entries.
func (l *Launcher) Recent() []search.Result {
	cfg, engine, h := l.snapshot()
	return engine.RecentHistory(h, cfg.Appearance.MaxHistoryDisplay)
}

// Browse lists dir filtered by filter under the folder match mode.
func (l *Launcher) Browse(dir, filter string) []search.Result {
	cfg, _, h := l.snapshot()
	return search.ListFolder(dir, filter, cfg.FolderMode(), cfg.Search.ShowHiddenSystem, h, cfg.Appearance.MaxResults)
}

// ExpandFolder records a drill-down into dir and lists it.
func (l *Launcher) ExpandFolder(dir string) []search.Result {
	if h := l.History(); h != nil {
		h.RecordFolderExpansion(dir)
	}
	return l.Browse(dir, "")
}

// Launch opens r. Files are counted in history before opening, so a failing
// opener still records the intent; folders are opened without counting.
// A target that disappeared is forgotten and reported as ErrTargetMissing.
func (l *Launcher) Launch(ctx context.Context, r search.Result, query string) error {
	if r.IsError || r.Path == "" {
		return ErrNotLaunchable
	}

	h := l.History()
	if _, err := os.Stat(r.Path); errors.Is(err, fs.ErrNotExist) {
		if h != nil {
			h.Forget(r.Path)
		}
		return fmt.Errorf("%w: %s", ErrTargetMissing, r.Path)
	}

	if !r.IsFolder && h != nil {
		h.RecordLaunch(r.Path, query)
	}
	if err := l.opener.Open(ctx, r.Path); err != nil {
		return fmt.Errorf("launch %s: %w", r.Path, err)
	}
	l.log.Info("launched", slog.String("path", r.Path), slog.Bool("folder", r.IsFolder))
	return nil
}

// LaunchPath launches a target given by path, using the catalog entry when
// there is one.
func (l *Launcher) LaunchPath(ctx context.Context, path, query string) error {
	if entry, ok := l.Engine().Lookup(path); ok {
		return l.Launch(ctx, search.Result{Name: entry.Name, Path: entry.TargetPath, IsFolder: entry.IsFolder}, query)
	}
	r := search.Result{Name: filepath.Base(path), Path: path}
	if info, err := os.Stat(path); err == nil {
		r.IsFolder = info.IsDir()
	}
	return l.Launch(ctx, r, query)
}

// ConfigPath returns the configuration file, or "" for an in-memory
// launcher.
func (l *Launcher) ConfigPath() string {
	return l.filePath(config.FileName)
}

// OpenConfig opens the configuration file with the system opener.
func (l *Launcher) OpenConfig(ctx context.Context) error {
	path := l.ConfigPath()
	if path == "" {
		return fmt.Errorf("%w: no config directory", ErrNotLaunchable)
	}
	if err := l.opener.Open(ctx, path); err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	return nil
}

// Close abandons any in-flight rebuild and closes the history store.
func (l *Launcher) Close() error {
	l.cancelRebuild()
	if h := l.History(); h != nil {
		return h.Close()
	}
	return nil
}
