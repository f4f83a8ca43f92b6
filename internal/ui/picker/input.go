package picker

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

const pageStep = 10

// InputHandler converts tcell events to actions.
type InputHandler struct {
	actions chan<- Action
}

// NewInputHandler returns a handler sending to actions.
func NewInputHandler(actions chan<- Action) *InputHandler {
	return &InputHandler{actions: actions}
}

// ProcessEvent translates ev. It returns false once the session should end.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := KeyAction(ev)
		if a == nil {
			return true
		}
		ih.actions <- a
		_, quit := a.(QuitAction)
		return !quit
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actions <- ResizeAction{Width: w, Height: h}
	}
	return true
}

// KeyAction maps a key press to an action, or nil when the key is unbound.
func KeyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return QuitAction{}
	case tcell.KeyEscape:
		return EscapeAction{}
	case tcell.KeyEnter:
		return LaunchAction{}
	case tcell.KeyUp, tcell.KeyCtrlP:
		return MoveAction{Delta: -1}
	case tcell.KeyDown, tcell.KeyCtrlN, tcell.KeyTab:
		return MoveAction{Delta: 1}
	case tcell.KeyPgUp:
		return MoveAction{Delta: -pageStep}
	case tcell.KeyPgDn:
		return MoveAction{Delta: pageStep}
	case tcell.KeyRight:
		return ExpandAction{}
	case tcell.KeyLeft:
		return ParentAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return BackspaceAction{}
	case tcell.KeyCtrlU:
		return ClearQueryAction{}
	case tcell.KeyCtrlR:
		return RebuildAction{}
	case tcell.KeyCtrlZ:
		return SuspendAction{}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			return TypeAction{Rune: r}
		}
	}
	return nil
}
