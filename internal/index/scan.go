package index

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/kk-code-lab/rlaunch/internal/fs"
)

// Scan walks rules with default settings and no cache. See (*Indexer).Scan.
func Scan(ctx context.Context, rules []ScanRule) ([]Entry, error) {
	return New("").Scan(ctx, rules)
}

// Scan walks every rule and returns the deduplicated entries. Each tree is
// walked depth first in name order; a folder's own entry precedes its
// contents. Rules are walked concurrently but merged in rule order, so the
// first occurrence of a name always comes from the earliest rule.
//
// Unreadable directories are skipped. The only error is ctx cancellation.
func (ix *Indexer) Scan(ctx context.Context, rules []ScanRule) ([]Entry, error) {
	perRule := make([][]Entry, len(rules))

	pool, err := ants.NewPool(ix.workers)
	if err != nil {
		ix.log.Warn("worker pool unavailable, scanning sequentially", "error", err)
		for i, rule := range rules {
			perRule[i] = ix.walkRule(ctx, rule)
		}
	} else {
		var wg sync.WaitGroup
		for i, rule := range rules {
			wg.Add(1)
			task := func() {
				defer wg.Done()
				perRule[i] = ix.walkRule(ctx, rule)
			}
			if err := pool.Submit(task); err != nil {
				task()
			}
		}
		wg.Wait()
		pool.Release()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan canceled: %w", err)
	}

	seen := make(map[string]struct{})
	var entries []Entry
	for _, candidates := range perRule {
		for _, e := range candidates {
			key := dedupKey(e)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, e)
		}
	}
	ix.log.Debug("scan_complete", slog.Int("rules", len(rules)), slog.Int("entries", len(entries)))
	return entries, nil
}

func (ix *Indexer) walkRule(ctx context.Context, rule ScanRule) []Entry {
	w := walker{
		ctx:            ctx,
		log:            ix.log,
		extensions:     rule.extensionSet(),
		includeFolders: rule.IncludeFolders,
	}
	w.walk(rule.Path)
	return w.out
}

type walker struct {
	ctx            context.Context
	log            *slog.Logger
	extensions     map[string]struct{}
	includeFolders bool
	out            []Entry
}

func (w *walker) walk(dir string) {
	if w.ctx.Err() != nil {
		return
	}
	entries, err := fs.ReadDir(dir)
	if err != nil {
		w.log.Debug("skip_unreadable_dir", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}

	for _, e := range entries {
		if e.IsDir {
			if w.includeFolders {
				w.out = append(w.out, Entry{Name: e.Name, TargetPath: e.FullPath, IsFolder: true})
			}
			if !e.IsSymlink {
				w.walk(e.FullPath)
			}
			continue
		}

		stem, ext, ok := splitName(e.Name)
		if !ok {
			continue
		}
		if _, match := w.extensions[ext]; match {
			w.out = append(w.out, Entry{Name: stem, TargetPath: e.FullPath})
		}
	}
}

// splitName separates a file name into its stem and lowercased final
// extension. Names without a stem (".desktop") or extension are rejected.
func splitName(name string) (stem, ext string, ok bool) {
	raw := filepath.Ext(name)
	if raw == "" || raw == name {
		return "", "", false
	}
	return strings.TrimSuffix(name, raw), NormalizeExtension(raw), true
}
