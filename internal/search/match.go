package search

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

const (
	prefixBase    = 10_000
	substringBase = 5_000
)

type candidates []string

func (c candidates) String(i int) string { return c[i] }
func (c candidates) Len() int            { return len(c) }

// matchAll scores every lowercased candidate against the normalized query
// and returns the base score of each one that matches, keyed by position.
//
// Prefix favours shorter names and Substring earlier hits; both count runes.
// Fuzzy uses the subsequence scorer, which rewards consecutive and
// word-start matches.
func matchAll(mode Mode, q string, names []string) map[int]int {
	scores := make(map[int]int)
	switch mode {
	case Prefix:
		for i, name := range names {
			if strings.HasPrefix(name, q) {
				scores[i] = prefixBase - utf8.RuneCountInString(name)
			}
		}
	case Substring:
		for i, name := range names {
			if idx := strings.Index(name, q); idx >= 0 {
				scores[i] = substringBase - utf8.RuneCountInString(name[:idx])
			}
		}
	default:
		for _, m := range fuzzy.FindFrom(q, candidates(names)) {
			scores[m.Index] = m.Score
		}
	}
	return scores
}

// fileName returns the last path component, splitting on either separator
// so Windows targets resolve the same on every platform.
func fileName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
