package picker

import "github.com/gdamore/tcell/v2"

// Theme holds the picker colors.
type Theme struct {
	PromptFg    tcell.Color
	QueryFg     tcell.Color
	FolderFg    tcell.Color
	PathFg      tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	ErrorFg     tcell.Color
	StatusFg    tcell.Color
}

// DefaultTheme returns the default color scheme.
func DefaultTheme() Theme {
	return Theme{
		PromptFg:    tcell.Color33,
		QueryFg:     tcell.ColorDefault,
		FolderFg:    tcell.Color33,
		PathFg:      tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		ErrorFg:     tcell.ColorRed,
		StatusFg:    tcell.ColorLightSlateGray,
	}
}
