package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener hands a target to the operating system.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, target string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, target string) error {
	return f(ctx, target)
}

// CommandOpener starts the platform's "open with default application"
// command and does not wait for it.
type CommandOpener struct {
	goos     string
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// NewCommandOpener returns an opener for the running platform.
func NewCommandOpener() *CommandOpener {
	return &CommandOpener{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Command returns the argv used to open target.
func (o *CommandOpener) Command(target string) ([]string, error) {
	return openCommand(o.goos, target, o.lookPath)
}

// Open starts the opener for target. The child is not tied to ctx; the
// launched application outlives the launcher.
func (o *CommandOpener) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	argv, err := o.Command(target)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func openCommand(goos, target string, lookPath func(string) (string, error)) ([]string, error) {
	firstFound := func(candidates ...[]string) ([]string, bool) {
		for _, c := range candidates {
			if resolved, err := lookPath(c[0]); err == nil && resolved != "" {
				return append([]string{resolved}, c[1:]...), true
			}
		}
		return nil, false
	}

	switch strings.ToLower(goos) {
	case "windows":
		shell := "cmd.exe"
		if resolved, err := lookPath("cmd"); err == nil && resolved != "" {
			shell = resolved
		}
		// The empty argument is the window title consumed by start.
		return []string{shell, "/c", "start", "", target}, nil
	case "darwin":
		if argv, ok := firstFound([]string{"open"}); ok {
			return append(argv, target), nil
		}
	default:
		if strings.EqualFold(filepath.Ext(target), ".desktop") {
			if argv, ok := firstFound([]string{"gio", "launch"}, []string{"dex"}); ok {
				return append(argv, target), nil
			}
		}
		if argv, ok := firstFound([]string{"xdg-open"}, []string{"gio", "open"}, []string{"gnome-open"}, []string{"kde-open"}); ok {
			return append(argv, target), nil
		}
	}
	return nil, fmt.Errorf("%w on %s", ErrNoOpener, goos)
}
