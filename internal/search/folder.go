package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kk-code-lab/rlaunch/internal/fs"
	"github.com/kk-code-lab/rlaunch/internal/query"
)

// UnreadableLabel is the name of the row returned for a directory that
// cannot be listed.
const UnreadableLabel = "Cannot access this folder"

type listed struct {
	result    Result
	lowerName string
	expanded  uint32
}

// ListFolder lists dir for browsing. Hidden and system entries are left out
// unless showHiddenSystem is set. A non-empty filter keeps only entries whose
// name matches under mode. Folders come first, then folders the user opens
// most, then names in case-insensitive order. An unreadable dir yields a
// single IsError row carrying dir as its path.
func ListFolder(dir, filter string, mode Mode, showHiddenSystem bool, h History, max int) []Result {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return []Result{{Name: UnreadableLabel, Path: dir, IsError: true}}
	}
	h = orEmpty(h)

	rows := make([]listed, 0, len(entries))
	for _, entry := range entries {
		if !showHiddenSystem && !entry.IsVisible() {
			continue
		}
		row := listed{
			result:    Result{Name: entry.Name, Path: entry.FullPath, IsFolder: entry.IsDir},
			lowerName: query.Lower(entry.Name),
		}
		if entry.IsDir {
			row.expanded = h.FolderExpansionCount(entry.FullPath)
		}
		rows = append(rows, row)
	}

	if nf := query.Normalize(filter); nf != "" {
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = r.lowerName
		}
		hits := matchAll(mode, nf, names)
		kept := rows[:0]
		for i, r := range rows {
			if _, ok := hits[i]; ok {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	slices.SortFunc(rows, func(a, b listed) int {
		if a.result.IsFolder != b.result.IsFolder {
			if a.result.IsFolder {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.expanded, a.expanded); c != 0 {
			return c
		}
		return strings.Compare(a.lowerName, b.lowerName)
	})

	if max >= 0 && len(rows) > max {
		rows = rows[:max]
	}
	results := make([]Result, len(rows))
	for i, r := range rows {
		results[i] = r.result
	}
	return results
}
