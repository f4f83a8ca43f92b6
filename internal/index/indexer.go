package index

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
	"github.com/kk-code-lab/rlaunch/internal/logging"
)

// Indexer scans rules and maintains the cache file.
type Indexer struct {
	cachePath string
	workers   int
	now       func() time.Time
	log       *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithWorkers bounds the number of rules walked at once.
func WithWorkers(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.workers = n
		}
	}
}

// WithClock overrides the time source used for Cache.BuiltAt.
func WithClock(now func() time.Time) Option {
	return func(ix *Indexer) {
		if now != nil {
			ix.now = now
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Indexer) {
		if l != nil {
			ix.log = l
		}
	}
}

// New returns an Indexer persisting to cachePath. An empty path disables
// the cache entirely.
func New(cachePath string, opts ...Option) *Indexer {
	ix := &Indexer{
		cachePath: cachePath,
		workers:   runtime.NumCPU(),
		now:       time.Now,
		log:       logging.ForComponent(logging.CompIndex),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// CachePath returns the cache file location.
func (ix *Indexer) CachePath() string {
	return ix.cachePath
}

// LoadCache reads the cache file without validating it against any rules.
func (ix *Indexer) LoadCache() (Cache, bool) {
	if ix.cachePath == "" {
		return Cache{}, false
	}
	return binfmt.Load(ix.cachePath, CacheMagic, binfmt.Current(CacheVersion, CacheCodec))
}

// LoadOrRescan always rescans and reports whether the result differs from
// what the cache held. A missing, undecodable or stale cache (format or
// config hash mismatch) counts as changed. The fresh result is written back
// in every case.
func (ix *Indexer) LoadOrRescan(ctx context.Context, rules []ScanRule) ([]Entry, bool, error) {
	hash := ConfigHash(rules)
	cached, ok := ix.LoadCache()

	entries, err := ix.Scan(ctx, rules)
	if err != nil {
		return nil, false, err
	}

	changed := true
	switch {
	case !ok:
		ix.log.Debug("cache_missing", slog.String("path", ix.cachePath))
	case cached.FormatVersion != FormatVersion:
		ix.log.Info("cache_format_mismatch", slog.Uint64("found", uint64(cached.FormatVersion)))
	case cached.ConfigHash != hash:
		ix.log.Info("cache_config_changed")
	default:
		changed = !Equal(cached.Entries, entries)
	}

	ix.save(entries, hash)
	return entries, changed, nil
}

// ForceRebuild scans and persists unconditionally.
func (ix *Indexer) ForceRebuild(ctx context.Context, rules []ScanRule) ([]Entry, error) {
	entries, err := ix.Scan(ctx, rules)
	if err != nil {
		return nil, err
	}
	ix.save(entries, ConfigHash(rules))
	return entries, nil
}

func (ix *Indexer) save(entries []Entry, hash uint64) {
	if ix.cachePath == "" {
		return
	}
	c := Cache{
		FormatVersion: FormatVersion,
		BuiltAt:       uint64(ix.now().Unix()),
		Entries:       entries,
		ConfigHash:    hash,
	}
	if err := binfmt.Save(ix.cachePath, CacheMagic, CacheVersion, c, CacheCodec); err != nil {
		ix.log.Warn("cache_save_failed", slog.String("path", ix.cachePath), slog.String("error", err.Error()))
		return
	}
	ix.log.Debug("cache_saved", slog.Int("entries", len(entries)))
}
