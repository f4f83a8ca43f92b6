// Package search ranks catalog entries against a query, blending textual
// relevance with launch history, and lists folders for browsing.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kk-code-lab/rlaunch/internal/index"
	"github.com/kk-code-lab/rlaunch/internal/query"
)

// Signal weights added on top of the base text score.
const (
	GlobalWeight          = 5
	QueryWeight           = 20
	FolderExpansionWeight = 5
)

// Result is one row shown to the user. IsError marks the placeholder row
// for a directory that could not be read; it must not be launched.
type Result struct {
	Name     string
	Path     string
	IsFolder bool
	IsError  bool
}

// Engine is an immutable snapshot of the catalog. It is safe for concurrent
// use; a rebuild produces a new Engine.
type Engine struct {
	entries    []index.Entry
	lowerNames []string
	lowerFiles []string
	byPath     map[string]int
}

// NewEngine indexes entries for searching. The slice is owned by the engine
// afterwards.
func NewEngine(entries []index.Entry) *Engine {
	e := &Engine{
		entries:    entries,
		lowerNames: make([]string, len(entries)),
		lowerFiles: make([]string, len(entries)),
		byPath:     make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		e.lowerNames[i] = query.Lower(entry.Name)
		e.lowerFiles[i] = query.Lower(fileName(entry.TargetPath))
		if _, dup := e.byPath[entry.TargetPath]; !dup {
			e.byPath[entry.TargetPath] = i
		}
	}
	return e
}

// Entries returns the catalog. Callers must not modify it.
func (e *Engine) Entries() []index.Entry {
	return e.entries
}

// Len returns the number of catalog entries.
func (e *Engine) Len() int {
	return len(e.entries)
}

type scored struct {
	idx   int
	score int64
	last  uint64
}

// Search returns up to max entries matching q, best first.
//
// When the query contains a dot, the target's file name (with extension) is
// matched too and the better of the two scores is kept, so "ssp.exe" finds
// the entry named "SSP" pointing at SSP.exe but not one pointing at SSP.lnk.
func (e *Engine) Search(q string, max int, h History, mode Mode) []Result {
	nq := query.Normalize(q)
	if nq == "" || max <= 0 || len(e.entries) == 0 {
		return nil
	}
	h = orEmpty(h)

	base := matchAll(mode, nq, e.lowerNames)
	if strings.Contains(nq, ".") {
		for i, s := range matchAll(mode, nq, e.lowerFiles) {
			if cur, ok := base[i]; !ok || s > cur {
				base[i] = s
			}
		}
	}

	ranked := make([]scored, 0, len(base))
	for i, b := range base {
		entry := e.entries[i]
		score := int64(b) +
			int64(h.GlobalCount(entry.TargetPath))*GlobalWeight +
			int64(h.QueryCount(nq, entry.TargetPath))*QueryWeight
		if entry.IsFolder {
			score += int64(h.FolderExpansionCount(entry.TargetPath)) * FolderExpansionWeight
		}
		last, _ := h.LastLaunched(entry.TargetPath)
		ranked = append(ranked, scored{idx: i, score: score, last: last})
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.last, a.last); c != 0 {
			return c
		}
		if c := strings.Compare(e.lowerNames[a.idx], e.lowerNames[b.idx]); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
	if len(ranked) > max {
		ranked = ranked[:max]
	}

	results := make([]Result, len(ranked))
	for i, r := range ranked {
		results[i] = e.result(r.idx)
	}
	return results
}

// RecentHistory returns recently launched targets that are still in the
// catalog, most recent first. The history's display bound applies before max.
func (e *Engine) RecentHistory(h History, max int) []Result {
	if h == nil || max <= 0 {
		return nil
	}
	recent := h.RecentLaunches(0)
	if len(recent) > max {
		recent = recent[:max]
	}

	var results []Result
	for _, path := range recent {
		if i, ok := e.byPath[path]; ok {
			results = append(results, e.result(i))
		}
	}
	return results
}

// Lookup returns the catalog entry for a target path.
func (e *Engine) Lookup(path string) (index.Entry, bool) {
	i, ok := e.byPath[path]
	if !ok {
		return index.Entry{}, false
	}
	return e.entries[i], true
}

func (e *Engine) result(i int) Result {
	entry := e.entries[i]
	return Result{Name: entry.Name, Path: entry.TargetPath, IsFolder: entry.IsFolder}
}
