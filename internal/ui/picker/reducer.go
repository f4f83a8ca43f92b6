package picker

import (
	"context"
	"log/slog"

	"github.com/kk-code-lab/rlaunch/internal/fs"
	"github.com/kk-code-lab/rlaunch/internal/logging"
	"github.com/kk-code-lab/rlaunch/internal/search"
)

// Backend is the launcher surface the picker drives.
type Backend interface {
	Search(q string) []search.Result
	Recent() []search.Result
	Browse(dir, filter string) []search.Result
	ExpandFolder(dir string) []search.Result
	Launch(ctx context.Context, r search.Result, query string) error
	OpenConfig(ctx context.Context) error
	StartRebuild(ctx context.Context) (<-chan struct{}, bool)
}

// Reducer applies actions to a State by calling into the backend.
type Reducer struct {
	ctx      context.Context
	backend  Backend
	dispatch func(Action)
	log      *slog.Logger
}

// NewReducer returns a reducer. dispatch receives actions produced by
// background work and may be nil.
func NewReducer(ctx context.Context, backend Backend, dispatch func(Action)) *Reducer {
	if dispatch == nil {
		dispatch = func(Action) {}
	}
	return &Reducer{
		ctx:      ctx,
		backend:  backend,
		dispatch: dispatch,
		log:      logging.ForComponent(logging.CompUI),
	}
}

// Refresh recomputes the result list for the current mode and query.
func (r *Reducer) Refresh(s *State) {
	switch {
	case s.InFolder():
		s.setResults(r.backend.Browse(s.Folder, s.Query))
	case s.Query == "":
		s.setResults(r.backend.Recent())
	default:
		s.setResults(r.backend.Search(s.Query))
	}
}

// Reduce applies a and reports whether the screen needs redrawing.
func (r *Reducer) Reduce(s *State, a Action) bool {
	switch a := a.(type) {
	case TypeAction:
		s.Query += string(a.Rune)
		s.Status = ""
		r.Refresh(s)
	case BackspaceAction:
		if s.Query == "" {
			return false
		}
		runes := []rune(s.Query)
		s.Query = string(runes[:len(runes)-1])
		r.Refresh(s)
	case ClearQueryAction:
		if s.Query == "" {
			return false
		}
		s.Query = ""
		r.Refresh(s)
	case MoveAction:
		s.move(a.Delta)
	case ExpandAction:
		return r.expand(s)
	case ParentAction:
		return r.parent(s)
	case EscapeAction:
		if !s.InFolder() {
			s.Quit = true
			return false
		}
		s.Folder = ""
		s.Query = s.saved.query
		s.Results = s.saved.results
		s.Selected = s.saved.selected
		s.Offset = s.saved.offset
		s.saved = savedSearch{}
	case LaunchAction:
		r.launch(s)
	case RebuildAction:
		r.rebuild(s)
	case RebuildDoneAction:
		s.Rebuilding = false
		s.Status = "Index rebuilt"
		if !s.InFolder() {
			r.Refresh(s)
		}
	case ResizeAction:
		s.Width, s.Height = a.Width, a.Height
		s.ensureVisible()
	case QuitAction:
		s.Quit = true
		return false
	default:
		return false
	}
	return true
}

func (r *Reducer) enterFolder(s *State, dir string, results []search.Result) {
	if !s.InFolder() {
		s.saved = savedSearch{query: s.Query, results: s.Results, selected: s.Selected, offset: s.Offset}
	}
	s.Folder = dir
	s.Query = ""
	s.Status = ""
	s.setResults(results)
}

func (r *Reducer) expand(s *State) bool {
	cur, ok := s.Current()
	if !ok || !cur.IsFolder || cur.IsError {
		return false
	}
	r.enterFolder(s, cur.Path, r.backend.ExpandFolder(cur.Path))
	return true
}

func (r *Reducer) parent(s *State) bool {
	if s.InFolder() {
		parent, ok := fs.ParentForNavigation(s.Folder)
		if !ok {
			return false
		}
		r.enterFolder(s, parent, r.backend.Browse(parent, ""))
		return true
	}

	cur, ok := s.Current()
	if !ok || cur.IsError {
		return false
	}
	dir, ok := fs.ParentForNavigation(cur.Path)
	if !ok {
		return false
	}
	r.enterFolder(s, dir, r.backend.ExpandFolder(dir))
	return true
}

func (r *Reducer) launch(s *State) {
	if s.IsSettingsCommand() {
		if err := r.backend.OpenConfig(r.ctx); err != nil {
			s.Status = err.Error()
			return
		}
		s.Quit = true
		return
	}

	cur, ok := s.Current()
	if !ok {
		return
	}
	if cur.IsError {
		s.Status = cur.Name
		return
	}

	if err := r.backend.Launch(r.ctx, cur, s.Query); err != nil {
		r.log.Warn("launch_failed", slog.String("path", cur.Path), slog.String("error", err.Error()))
		s.Status = err.Error()
		r.Refresh(s)
		return
	}
	s.Quit = true
}

func (r *Reducer) rebuild(s *State) {
	done, ok := r.backend.StartRebuild(r.ctx)
	if !ok {
		s.Status = "Rebuild already running"
		return
	}
	s.Rebuilding = true
	s.Status = ""
	go func() {
		<-done
		r.dispatch(RebuildDoneAction{})
	}()
}
