// Package query canonicalizes user-typed search text.
package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// KnownExtensions lists the launchable extensions SplitExtension recognizes.
var KnownExtensions = []string{".exe", ".lnk", ".bat", ".cmd", ".msi", ".com", ".scr", ".ps1"}

// Normalize trims text, collapses whitespace runs to a single space and
// lowercases it. The result is the canonical key for history lookups and all
// textual matching, so "  Foo   Bar " and "FOO BAR" compare equal.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range norm.NFC.String(text) {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return Lower(b.String())
}

// Lower applies the same lowercase folding Normalize uses, without touching
// whitespace. Catalog names are folded with it once so they compare against
// normalized queries.
func Lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// SplitExtension splits a trailing known launchable extension off text.
// "ssp.exe" yields ("ssp", ".exe", true); "config.toml" yields
// ("config.toml", "", false). Matching is exact, so callers pass normalized text.
func SplitExtension(text string) (stem string, ext string, ok bool) {
	for _, known := range KnownExtensions {
		if s, found := strings.CutSuffix(text, known); found {
			return s, known, true
		}
	}
	return text, "", false
}
