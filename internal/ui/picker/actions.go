package picker

// Action is a state transition produced by input or background work.
type Action interface {
	isAction()
}

type (
	// TypeAction appends a rune to the query.
	TypeAction struct{ Rune rune }
	// BackspaceAction deletes the last query rune.
	BackspaceAction struct{}
	// ClearQueryAction empties the query.
	ClearQueryAction struct{}
	// MoveAction shifts the selection by Delta rows.
	MoveAction struct{ Delta int }
	// ExpandAction browses into the selected folder.
	ExpandAction struct{}
	// ParentAction browses the parent folder.
	ParentAction struct{}
	// EscapeAction leaves folder mode, or quits outside it.
	EscapeAction struct{}
	// LaunchAction opens the selected result.
	LaunchAction struct{}
	// RebuildAction starts a background index rebuild.
	RebuildAction struct{}
	// RebuildDoneAction is posted when a background rebuild finishes.
	RebuildDoneAction struct{}
	// ResizeAction records the new screen size.
	ResizeAction struct{ Width, Height int }
	// SuspendAction stops the process and hands the terminal back to the
	// shell until it is resumed.
	SuspendAction struct{}
	// QuitAction ends the session.
	QuitAction struct{}
)

func (TypeAction) isAction()        {}
func (BackspaceAction) isAction()   {}
func (ClearQueryAction) isAction()  {}
func (MoveAction) isAction()        {}
func (ExpandAction) isAction()      {}
func (ParentAction) isAction()      {}
func (EscapeAction) isAction()      {}
func (LaunchAction) isAction()      {}
func (RebuildAction) isAction()     {}
func (RebuildDoneAction) isAction() {}
func (ResizeAction) isAction()      {}
func (SuspendAction) isAction()     {}
func (QuitAction) isAction()        {}
