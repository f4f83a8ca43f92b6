//go:build windows

package picker

import "os"

func contSignals() []os.Signal {
	return nil
}

// Windows consoles have no job control.
func (p *Picker) suspendToShell() {}

func (p *Picker) resumeAfterStop() bool {
	return false
}
