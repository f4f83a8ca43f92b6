package search

import (
	"fmt"
	"strings"
)

// Mode selects how a query is matched against names.
type Mode int

const (
	// Fuzzy matches query runes in order with gaps allowed.
	Fuzzy Mode = iota
	// Prefix matches names that start with the query.
	Prefix
	// Substring matches names that contain the query.
	Substring
)

var modeNames = [...]string{
	Fuzzy:     "fuzzy",
	Prefix:    "prefix",
	Substring: "substring",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a case-insensitive mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range modeNames {
		if n == key {
			return Mode(m), nil
		}
	}
	return Fuzzy, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
