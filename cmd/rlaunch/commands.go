package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kk-code-lab/rlaunch/internal/config"
	"github.com/kk-code-lab/rlaunch/internal/launcher"
	"github.com/kk-code-lab/rlaunch/internal/logging"
	"github.com/kk-code-lab/rlaunch/internal/placement"
	"github.com/kk-code-lab/rlaunch/internal/ui/picker"
)

const envKey = "env"

// env is resolved once in Before and shared by every command.
type env struct {
	dir string
	cfg config.Config
}

func setup(c *cli.Context) error {
	dir := c.String("config-dir")
	if dir == "" {
		resolved, err := config.Dir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		dir = resolved
	}

	cfg, err := config.Load(dir)
	logging.Init(cfg.LogConfig(dir, c.Bool("debug")))
	if err != nil {
		if !errors.Is(err, config.ErrParse) && !errors.Is(err, config.ErrInvalid) {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "warning: %v (using defaults)\n", err)
		logging.Logger().Warn("config_fallback", "error", err.Error())
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[envKey] = &env{dir: dir, cfg: cfg}
	return nil
}

func teardown(*cli.Context) error {
	logging.Shutdown()
	return nil
}

func envOf(c *cli.Context) *env {
	e, _ := c.App.Metadata[envKey].(*env)
	return e
}

func withLauncher(c *cli.Context, run func(*launcher.Launcher) error) error {
	e := envOf(c)
	l := launcher.New(e.dir, e.cfg)
	if err := l.Open(c.Context); err != nil {
		return err
	}
	defer func() {
		_ = l.Close()
	}()
	return run(l)
}

func pickCommand(c *cli.Context) error {
	return withLauncher(c, func(l *launcher.Launcher) error {
		return picker.Run(c.Context, l)
	})
}

func searchCommand(c *cli.Context) error {
	q := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(q) == "" {
		return cli.Exit("search needs a query", 2)
	}
	return withLauncher(c, func(l *launcher.Launcher) error {
		printResults(c.App.Writer, l.Search(q))
		return nil
	})
}

func recentCommand(c *cli.Context) error {
	return withLauncher(c, func(l *launcher.Launcher) error {
		printResults(c.App.Writer, l.Recent())
		return nil
	})
}

func lsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("ls needs a directory", 2)
	}
	dir, filter := c.Args().Get(0), strings.Join(c.Args().Tail(), " ")
	return withLauncher(c, func(l *launcher.Launcher) error {
		printResults(c.App.Writer, l.Browse(absPath(dir), filter))
		return nil
	})
}

func expandCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expand needs exactly one directory", 2)
	}
	return withLauncher(c, func(l *launcher.Launcher) error {
		printResults(c.App.Writer, l.ExpandFolder(absPath(c.Args().First())))
		return nil
	})
}

func rebuildCommand(c *cli.Context) error {
	return withLauncher(c, func(l *launcher.Launcher) error {
		entries, err := l.Rebuild(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "indexed %d entries\n", len(entries))
		return nil
	})
}

func launchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("launch needs exactly one path", 2)
	}
	return withLauncher(c, func(l *launcher.Launcher) error {
		return l.LaunchPath(c.Context, absPath(c.Args().First()), c.String("query"))
	})
}

func placementStore(c *cli.Context) *placement.Store {
	return placement.NewStore(filepath.Join(envOf(c).dir, placement.FileName))
}

func placementShowCommand(c *cli.Context) error {
	printPlacement(c.App.Writer, placementStore(c).Load())
	return nil
}

func placementSetCommand(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit("placement set needs a target and two numbers", 2)
	}
	a, err := parseInt32(c.Args().Get(1))
	if err != nil {
		return err
	}
	b, err := parseInt32(c.Args().Get(2))
	if err != nil {
		return err
	}

	store := placementStore(c)
	switch target := c.Args().First(); target {
	case "search":
		return store.SetSearch(placement.Point{X: a, Y: b})
	case "settings":
		return store.SetSettings(placement.Point{X: a, Y: b})
	case "settings-size":
		return store.SetSettingsSize(placement.Size{Width: a, Height: b})
	default:
		return cli.Exit(fmt.Sprintf("unknown placement target %q", target), 2)
	}
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return int32(n), nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
