// Package picker is the interactive terminal front end: a query line over
// a ranked result list, with folder browsing on the arrow keys.
package picker

import (
	"strings"

	"github.com/kk-code-lab/rlaunch/internal/search"
)

// SettingsCommand, entered as the whole query, opens the config file.
const SettingsCommand = "/o"

// State is everything the renderer needs. It is owned by the event loop.
type State struct {
	Query    string
	Results  []search.Result
	Selected int
	Offset   int

	// Folder is the directory being browsed, empty outside folder mode.
	Folder     string
	Status     string
	Rebuilding bool

	Width  int
	Height int
	Quit   bool

	saved savedSearch
}

// savedSearch is what Escape restores when leaving folder mode.
type savedSearch struct {
	query    string
	results  []search.Result
	selected int
	offset   int
}

// InFolder reports whether a folder is being browsed.
func (s *State) InFolder() bool {
	return s.Folder != ""
}

// Current returns the highlighted result.
func (s *State) Current() (search.Result, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Results) {
		return search.Result{}, false
	}
	return s.Results[s.Selected], true
}

// IsSettingsCommand reports whether the query asks for the settings file.
func (s *State) IsSettingsCommand() bool {
	return !s.InFolder() && strings.TrimSpace(s.Query) == SettingsCommand
}

// ListRows is the number of result rows that fit between the query line
// and the status line.
func (s *State) ListRows() int {
	if rows := s.Height - 2; rows > 0 {
		return rows
	}
	return 0
}

func (s *State) setResults(results []search.Result) {
	s.Results = results
	s.Selected = 0
	s.Offset = 0
}

func (s *State) move(delta int) {
	if len(s.Results) == 0 {
		s.Selected, s.Offset = 0, 0
		return
	}
	s.Selected = min(max(s.Selected+delta, 0), len(s.Results)-1)
	s.ensureVisible()
}

func (s *State) ensureVisible() {
	rows := s.ListRows()
	if rows == 0 {
		return
	}
	if s.Selected < s.Offset {
		s.Offset = s.Selected
	}
	if s.Selected >= s.Offset+rows {
		s.Offset = s.Selected - rows + 1
	}
	s.Offset = max(min(s.Offset, len(s.Results)-rows), 0)
}
