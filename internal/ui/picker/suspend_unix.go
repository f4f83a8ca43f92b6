//go:build !windows

package picker

import (
	"os"
	"syscall"
)

func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (p *Picker) suspendToShell() {
	_ = p.screen.Suspend()
	// Only this process stops; signalling the group would also stop the
	// shell wrapper that started us.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (p *Picker) resumeAfterStop() bool {
	if err := p.screen.Resume(); err != nil {
		return false
	}
	p.screen.Sync()
	p.state.Width, p.state.Height = p.screen.Size()
	p.state.ensureVisible()
	return true
}
