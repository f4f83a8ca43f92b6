package picker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rlaunch/internal/logging"
)

// Picker runs the interactive session on a tcell screen.
type Picker struct {
	screen   tcell.Screen
	state    *State
	reducer  *Reducer
	renderer *Renderer
	input    *InputHandler
	actionCh chan Action
	log      *slog.Logger
}

// Run opens the terminal, runs a session against backend and restores the
// terminal before returning.
func Run(ctx context.Context, backend Backend) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	return New(ctx, screen, backend).Run(ctx)
}

// New prepares a session on an initialized screen. The picker takes
// ownership of the screen and finalizes it when Run returns.
func New(ctx context.Context, screen tcell.Screen, backend Backend) *Picker {
	p := &Picker{
		screen:   screen,
		state:    &State{},
		renderer: NewRenderer(screen),
		actionCh: make(chan Action, 10),
		log:      logging.ForComponent(logging.CompUI),
	}
	p.input = NewInputHandler(p.actionCh)
	p.reducer = NewReducer(ctx, backend, p.Post)
	p.state.Width, p.state.Height = screen.Size()
	p.reducer.Refresh(p.state)
	return p
}

// Post queues an action from any goroutine.
func (p *Picker) Post(a Action) {
	select {
	case p.actionCh <- a:
	default:
		go func() { p.actionCh <- a }()
	}
}

// State returns the session state. It is only safe to read once Run has
// returned.
func (p *Picker) State() *State {
	return p.state
}

// Run processes events until the user quits or ctx is done.
func (p *Picker) Run(ctx context.Context) error {
	defer p.screen.Fini()

	stop := make(chan struct{})
	defer close(stop)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	var contCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		contCh = make(chan os.Signal, 1)
		signal.Notify(contCh, sigs...)
		defer signal.Stop(contCh)
	}

	p.renderer.Render(p.state)
	for !p.state.Quit {
		render := false
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !p.input.ProcessEvent(ev) {
				p.state.Quit = true
			}
		case a := <-p.actionCh:
			render = p.apply(a)
		case <-contCh:
			render = p.resumeAfterStop()
		}
		if p.drain() {
			render = true
		}
		if render && !p.state.Quit {
			p.renderer.Render(p.state)
		}
	}
	p.log.Debug("picker_closed", slog.String("query", p.state.Query))
	return nil
}

func (p *Picker) apply(a Action) bool {
	if _, ok := a.(SuspendAction); ok {
		p.suspendToShell()
		return false
	}
	return p.reducer.Reduce(p.state, a)
}

// drain applies every queued action without blocking.
func (p *Picker) drain() bool {
	changed := false
	for {
		select {
		case a := <-p.actionCh:
			if p.apply(a) {
				changed = true
			}
		default:
			return changed
		}
	}
}
