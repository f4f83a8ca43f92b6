package fs

import "strings"

// IsNavigationRoot reports whether path is a place folder browsing cannot go
// above: the Unix root, a drive root ("C:" or "C:\") or a UNC share root
// ("\\server\share"). Both separators are accepted so paths recorded on
// another platform classify the same way.
func IsNavigationRoot(path string) bool {
	p := strings.TrimSpace(path)
	if p == "" {
		return false
	}
	if strings.Trim(p, "/") == "" {
		return true
	}

	trimmed := strings.TrimRight(strings.ReplaceAll(p, "/", `\`), `\`)
	if isDriveSpec(trimmed) {
		return true
	}
	if rest, ok := strings.CutPrefix(trimmed, `\\`); ok {
		parts := strings.FieldsFunc(rest, func(r rune) bool { return r == '\\' })
		return len(parts) <= 2
	}
	return false
}

// ParentForNavigation returns the directory above current, or false when
// current is a navigation root or has no parent component.
func ParentForNavigation(current string) (string, bool) {
	if IsNavigationRoot(current) {
		return "", false
	}

	trimmed := strings.TrimRight(strings.TrimSpace(current), `/\`)
	idx := strings.LastIndexAny(trimmed, `/\`)
	if idx < 0 {
		return "", false
	}

	parent := trimmed[:idx]
	switch {
	case parent == "":
		return trimmed[:1], true
	case isDriveSpec(parent):
		return parent + trimmed[idx:idx+1], true
	}
	return parent, true
}

func isDriveSpec(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
