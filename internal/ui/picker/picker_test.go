package picker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rlaunch/internal/search"
)

type launchCall struct {
	path  string
	query string
}

type fakeBackend struct {
	catalog   []search.Result
	recent    []search.Result
	folders   map[string][]search.Result
	expanded  []string
	launched  []launchCall
	launchErr error
	settings  int
	rebuildCh chan struct{}
}

func (f *fakeBackend) Search(q string) []search.Result {
	var out []search.Result
	for _, r := range f.catalog {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(q)) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeBackend) Recent() []search.Result { return f.recent }

func (f *fakeBackend) Browse(dir, filter string) []search.Result {
	rows, ok := f.folders[dir]
	if !ok {
		return []search.Result{{Name: search.UnreadableLabel, Path: dir, IsError: true}}
	}
	var out []search.Result
	for _, r := range rows {
		if strings.Contains(r.Name, filter) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeBackend) ExpandFolder(dir string) []search.Result {
	f.expanded = append(f.expanded, dir)
	return f.Browse(dir, "")
}

func (f *fakeBackend) Launch(_ context.Context, r search.Result, q string) error {
	f.launched = append(f.launched, launchCall{path: r.Path, query: q})
	return f.launchErr
}

func (f *fakeBackend) OpenConfig(context.Context) error {
	f.settings++
	return nil
}

func (f *fakeBackend) StartRebuild(context.Context) (<-chan struct{}, bool) {
	if f.rebuildCh == nil {
		return nil, false
	}
	return f.rebuildCh, true
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		catalog: []search.Result{
			{Name: "Firefox", Path: "/apps/Firefox.desktop"},
			{Name: "Files", Path: "/apps/Files.desktop"},
			{Name: "Projects", Path: "/home/me/Projects", IsFolder: true},
		},
		recent: []search.Result{{Name: "Files", Path: "/apps/Files.desktop"}},
		folders: map[string][]search.Result{
			"/home/me/Projects": {
				{Name: "rlaunch", Path: "/home/me/Projects/rlaunch", IsFolder: true},
				{Name: "notes.md", Path: "/home/me/Projects/notes.md"},
			},
			"/home/me": {
				{Name: "Projects", Path: "/home/me/Projects", IsFolder: true},
			},
			"/apps": {
				{Name: "Files.desktop", Path: "/apps/Files.desktop"},
			},
		},
	}
}

func newState(r *Reducer) *State {
	s := &State{Width: 60, Height: 10}
	r.Refresh(s)
	return s
}

func typeQuery(r *Reducer, s *State, q string) {
	for _, ru := range q {
		r.Reduce(s, TypeAction{Rune: ru})
	}
}

func resultNames(results []search.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestEmptyQueryShowsRecent(t *testing.T) {
	r := NewReducer(context.Background(), newBackend(), nil)
	s := newState(r)
	assert.Equal(t, []string{"Files"}, resultNames(s.Results))

	typeQuery(r, s, "fi")
	assert.Equal(t, []string{"Firefox", "Files"}, resultNames(s.Results))

	r.Reduce(s, BackspaceAction{})
	r.Reduce(s, BackspaceAction{})
	assert.Equal(t, []string{"Files"}, resultNames(s.Results))
	assert.False(t, r.Reduce(s, BackspaceAction{}), "nothing to delete")
}

func TestMoveClampsSelection(t *testing.T) {
	r := NewReducer(context.Background(), newBackend(), nil)
	s := newState(r)
	typeQuery(r, s, "f")
	require.Len(t, s.Results, 2)

	r.Reduce(s, MoveAction{Delta: -1})
	assert.Equal(t, 0, s.Selected)
	r.Reduce(s, MoveAction{Delta: pageStep})
	assert.Equal(t, 1, s.Selected)
}

func TestMoveScrollsIntoView(t *testing.T) {
	s := &State{Height: 4}
	for i := 0; i < 6; i++ {
		s.Results = append(s.Results, search.Result{Name: string(rune('a' + i))})
	}
	s.move(3)
	assert.Equal(t, 3, s.Selected)
	assert.Equal(t, 2, s.Offset)
	s.move(-3)
	assert.Equal(t, 0, s.Offset)
}

func TestExpandAndEscapeRestoresSearch(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)
	typeQuery(r, s, "proj")
	require.Equal(t, []string{"Projects"}, resultNames(s.Results))

	require.True(t, r.Reduce(s, ExpandAction{}))
	assert.Equal(t, "/home/me/Projects", s.Folder)
	assert.Empty(t, s.Query)
	assert.Equal(t, []string{"rlaunch", "notes.md"}, resultNames(s.Results))
	assert.Equal(t, []string{"/home/me/Projects"}, b.expanded)

	typeQuery(r, s, "notes")
	assert.Equal(t, []string{"notes.md"}, resultNames(s.Results))

	r.Reduce(s, EscapeAction{})
	assert.False(t, s.InFolder())
	assert.Equal(t, "proj", s.Query)
	assert.Equal(t, []string{"Projects"}, resultNames(s.Results))
	assert.False(t, s.Quit)

	r.Reduce(s, EscapeAction{})
	assert.True(t, s.Quit)
}

func TestExpandIgnoresFiles(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)
	assert.False(t, r.Reduce(s, ExpandAction{}))
	assert.Empty(t, b.expanded)
}

func TestParentOutsideFolderEntersItemParent(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)

	require.True(t, r.Reduce(s, ParentAction{}))
	assert.Equal(t, "/apps", s.Folder)
	assert.Equal(t, []string{"/apps"}, b.expanded)
}

func TestParentOutsideFolderStopsAtRoot(t *testing.T) {
	for _, item := range []search.Result{
		{Name: "/", Path: "/", IsFolder: true},
		{Name: "orphan", Path: "orphan"},
	} {
		t.Run(item.Name, func(t *testing.T) {
			b := newBackend()
			b.recent = []search.Result{item}
			r := NewReducer(context.Background(), b, nil)
			s := newState(r)

			assert.False(t, r.Reduce(s, ParentAction{}))
			assert.False(t, s.InFolder())
			assert.Empty(t, b.expanded)
			assert.Equal(t, []string{item.Name}, resultNames(s.Results))
		})
	}
}

func TestParentInsideFolderWalksUp(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)
	typeQuery(r, s, "proj")
	r.Reduce(s, ExpandAction{})

	require.True(t, r.Reduce(s, ParentAction{}))
	assert.Equal(t, "/home/me", s.Folder)
	assert.Equal(t, []string{"Projects"}, resultNames(s.Results))
	assert.Equal(t, []string{"/home/me/Projects"}, b.expanded, "walking up is not an expansion")

	r.Reduce(s, EscapeAction{})
	assert.Equal(t, "proj", s.Query, "escape restores the search that started browsing")
}

func TestParentStopsAtRoot(t *testing.T) {
	r := NewReducer(context.Background(), newBackend(), nil)
	s := &State{Folder: "/"}
	assert.False(t, r.Reduce(s, ParentAction{}))
}

func TestLaunchQuitsOnSuccess(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)
	typeQuery(r, s, "fire")

	r.Reduce(s, LaunchAction{})
	assert.True(t, s.Quit)
	assert.Equal(t, []launchCall{{path: "/apps/Firefox.desktop", query: "fire"}}, b.launched)
}

func TestLaunchFailureShowsStatus(t *testing.T) {
	b := newBackend()
	b.launchErr = errors.New("no opener")
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)

	r.Reduce(s, LaunchAction{})
	assert.False(t, s.Quit)
	assert.Equal(t, "no opener", s.Status)
}

func TestLaunchErrorRowDoesNothing(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := &State{Folder: "/locked", Results: b.Browse("/locked", "")}

	r.Reduce(s, LaunchAction{})
	assert.Empty(t, b.launched)
	assert.Equal(t, search.UnreadableLabel, s.Status)
	assert.False(t, s.Quit)
}

func TestSettingsCommand(t *testing.T) {
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := newState(r)
	typeQuery(r, s, SettingsCommand)

	r.Reduce(s, LaunchAction{})
	assert.Equal(t, 1, b.settings)
	assert.Empty(t, b.launched)
	assert.True(t, s.Quit)
}

func TestRebuildPostsDone(t *testing.T) {
	b := newBackend()
	b.rebuildCh = make(chan struct{})
	posted := make(chan Action, 1)
	r := NewReducer(context.Background(), b, func(a Action) { posted <- a })
	s := newState(r)

	r.Reduce(s, RebuildAction{})
	assert.True(t, s.Rebuilding)
	close(b.rebuildCh)

	select {
	case a := <-posted:
		r.Reduce(s, a)
	case <-time.After(time.Second):
		t.Fatal("rebuild completion was not posted")
	}
	assert.False(t, s.Rebuilding)
	assert.Equal(t, "Index rebuilt", s.Status)
}

func TestRebuildBusy(t *testing.T) {
	r := NewReducer(context.Background(), newBackend(), nil)
	s := newState(r)
	r.Reduce(s, RebuildAction{})
	assert.False(t, s.Rebuilding)
	assert.Equal(t, "Rebuild already running", s.Status)
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), TypeAction{Rune: 'x'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), LaunchAction{}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), EscapeAction{}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), MoveAction{Delta: -1}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), MoveAction{Delta: 1}},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ExpandAction{}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ParentAction{}},
		{"rebuild", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), RebuildAction{}},
		{"quit", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), QuitAction{}},
		{"suspend", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), SuspendAction{}},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyAction(tt.ev))
		})
	}
}

func rowText(t *testing.T, screen tcell.SimulationScreen, y int) string {
	t.Helper()
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			continue
		}
		b.WriteString(string(runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	return screen
}

func TestRenderDrawsQueryResultsAndStatus(t *testing.T) {
	screen := newScreen(t, 60, 6)
	defer screen.Fini()
	r := NewReducer(context.Background(), newBackend(), nil)
	s := &State{Width: 60, Height: 6}
	typeQuery(r, s, "fi")

	NewRenderer(screen).Render(s)

	assert.Equal(t, "› fi", rowText(t, screen, 0))
	assert.True(t, strings.HasPrefix(rowText(t, screen, 1), "Firefox"))
	assert.Contains(t, rowText(t, screen, 1), "/apps/Firefox.desktop")
	assert.True(t, strings.HasPrefix(rowText(t, screen, 2), "Files"))
	assert.True(t, strings.HasSuffix(rowText(t, screen, 5), "1/2"))
}

func TestRenderFolderHeader(t *testing.T) {
	screen := newScreen(t, 60, 6)
	defer screen.Fini()
	b := newBackend()
	r := NewReducer(context.Background(), b, nil)
	s := &State{Width: 60, Height: 6}
	typeQuery(r, s, "proj")
	r.Reduce(s, ExpandAction{})

	NewRenderer(screen).Render(s)
	assert.Equal(t, "/home/me/Projects ›", rowText(t, screen, 0))
	assert.True(t, strings.HasPrefix(rowText(t, screen, 1), "rlaunch/"))
}

func TestRunLaunchesOnEnter(t *testing.T) {
	screen := newScreen(t, 60, 6)
	b := newBackend()
	p := New(context.Background(), screen, b)

	for _, ru := range "fire" {
		screen.InjectKey(tcell.KeyRune, ru, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("picker did not exit")
	}
	assert.Equal(t, []launchCall{{path: "/apps/Firefox.desktop", query: "fire"}}, b.launched)
	assert.Equal(t, "fire", p.State().Query)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	screen := newScreen(t, 40, 5)
	p := New(context.Background(), screen, newBackend())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
}
