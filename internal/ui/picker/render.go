package picker

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/rlaunch/internal/search"
	"github.com/kk-code-lab/rlaunch/internal/textutil"
)

const (
	prompt       = "› "
	folderSep    = " › "
	keyHints     = "↵ open  → expand  ← parent  esc back  ^R rebuild"
	minNameWidth = 12
)

// Renderer draws a State onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
}

// NewRenderer returns a renderer using the default theme.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: DefaultTheme()}
}

// Render draws the whole UI.
func (r *Renderer) Render(s *State) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	r.drawQueryLine(s, w)
	rows := h - 2
	for i := 0; i < rows; i++ {
		idx := s.Offset + i
		if idx >= len(s.Results) {
			break
		}
		r.drawResult(1+i, w, s.Results[idx], idx == s.Selected)
	}
	if h > 1 {
		r.drawStatusLine(s, w, h-1)
	}
	r.screen.Show()
}

func (r *Renderer) drawQueryLine(s *State, w int) {
	promptStyle := tcell.StyleDefault.Foreground(r.theme.PromptFg).Bold(true)
	x := 0
	if s.InFolder() {
		folder := textutil.Truncate(textutil.SanitizeTerminalText(s.Folder), w/2)
		x = r.drawText(x, 0, w, folder, promptStyle)
		x = r.drawText(x, 0, w-x, folderSep, promptStyle)
	} else {
		x = r.drawText(x, 0, w, prompt, promptStyle)
	}
	x = r.drawText(x, 0, w-x, textutil.SanitizeTerminalText(s.Query), tcell.StyleDefault.Foreground(r.theme.QueryFg))
	if x < w {
		r.screen.ShowCursor(x, 0)
	} else {
		r.screen.HideCursor()
	}
}

func (r *Renderer) drawResult(y, w int, res search.Result, selected bool) {
	nameStyle := tcell.StyleDefault
	pathStyle := tcell.StyleDefault.Foreground(r.theme.PathFg)
	switch {
	case res.IsError:
		nameStyle = nameStyle.Foreground(r.theme.ErrorFg)
	case res.IsFolder:
		nameStyle = nameStyle.Foreground(r.theme.FolderFg).Bold(true)
	}
	if selected {
		nameStyle = nameStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		pathStyle = pathStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}

	name := res.Name
	if res.IsFolder {
		name += string(filepath.Separator)
	}

	nameWidth := max(minNameWidth, w*2/5)
	if nameWidth >= w {
		r.drawText(0, y, w, textutil.Fit(name, w), nameStyle)
		return
	}
	x := r.drawText(0, y, nameWidth, textutil.Fit(name, nameWidth), nameStyle)
	x = r.drawText(x, y, w-x, " ", pathStyle)
	path := ""
	if !res.IsError {
		path = res.Path
	}
	r.drawText(x, y, w-x, textutil.Fit(path, w-x), pathStyle)
}

func (r *Renderer) drawStatusLine(s *State, w, y int) {
	style := tcell.StyleDefault.Foreground(r.theme.StatusFg)
	left := keyHints
	switch {
	case s.Status != "":
		left = s.Status
	case s.IsSettingsCommand():
		left = "↵ open settings"
	}
	right := fmt.Sprintf("%d", len(s.Results))
	if len(s.Results) > 0 {
		right = fmt.Sprintf("%d/%d", s.Selected+1, len(s.Results))
	}
	if s.Rebuilding {
		right = "rebuilding… " + right
	}

	rightWidth := textutil.DisplayWidth(right)
	leftWidth := max(w-rightWidth-1, 0)
	x := r.drawText(0, y, leftWidth, textutil.Fit(left, leftWidth), style)
	if x < w {
		x = r.drawText(x, y, w-x, " ", style)
	}
	r.drawText(x, y, w-x, right, style)
}

// drawText writes text starting at x and returns the column after it.
// Runes that would cross maxWidth are dropped.
func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	limit := x + maxWidth
	for _, ru := range text {
		rw := runewidth.RuneWidth(ru)
		if rw <= 0 {
			continue
		}
		if x+rw > limit {
			break
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += rw
	}
	return x
}
