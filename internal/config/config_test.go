package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rlaunch/internal/index"
	"github.com/kk-code-lab/rlaunch/internal/search"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8, cfg.Appearance.MaxResults)
	assert.Equal(t, 200, cfg.Appearance.TopNHistory)
	assert.Equal(t, 8, cfg.Appearance.MaxHistoryDisplay)
	assert.Equal(t, search.Fuzzy, cfg.NormalMode())
	assert.Equal(t, search.Fuzzy, cfg.FolderMode())
	assert.False(t, cfg.Search.ShowHiddenSystem)
	require.NoError(t, cfg.Validate())
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rlaunch")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Appearance, again.Appearance)
	assert.Equal(t, cfg.Search, again.Search)
}

func TestLoadFullConfig(t *testing.T) {
	dir := writeConfig(t, `
[appearance]
max_results = 10
top_n_history = 150
max_history_display = 5

[paths]
additional = ['C:\Tools']

[[paths.scan]]
path = 'C:\Apps'
extensions = [".exe", "bat"]
include_folders = true

[search]
normal_mode = "prefix"
folder_mode = "substring"
show_hidden_system = true
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, Appearance{MaxResults: 10, TopNHistory: 150, MaxHistoryDisplay: 5}, cfg.Appearance)
	assert.Equal(t, search.Prefix, cfg.NormalMode())
	assert.Equal(t, search.Substring, cfg.FolderMode())
	assert.True(t, cfg.Search.ShowHiddenSystem)
	assert.Equal(t, []index.ScanRule{
		{Path: `C:\Tools`, Extensions: []string{".lnk"}},
		{Path: `C:\Apps`, Extensions: []string{".exe", "bat"}, IncludeFolders: true},
	}, cfg.Rules())
	assert.Equal(t, "info", cfg.Log.Level, "missing sections keep defaults")
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, "[appearance]\nmax_results = 3\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Appearance.MaxResults)
	assert.Equal(t, 200, cfg.Appearance.TopNHistory)
	assert.Equal(t, DefaultScanPaths(), cfg.Paths.Scan)
}

func TestLoadEmptyScanListIsKept(t *testing.T) {
	dir := writeConfig(t, "[paths]\nscan = []\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Paths.Scan)
}

func TestLoadParseError(t *testing.T) {
	dir := writeConfig(t, "[appearance\nmax_results = ")
	cfg, err := Load(dir)
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, Default(), cfg)
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"zero results":     "[appearance]\nmax_results = 0\n",
		"unknown mode":     "[search]\nnormal_mode = \"regex\"\n",
		"empty scan path":  "[[paths.scan]]\npath = \"\"\nextensions = [\".exe\"]\n",
		"blank extension":  "[[paths.scan]]\npath = \"/apps\"\nextensions = [\"\"]\n",
		"bad log format":   "[log]\nformat = \"xml\"\n",
		"negative backups": "[log]\nmax_backups = -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestDirFromEnv(t *testing.T) {
	t.Setenv(DirEnv, "/tmp/custom-rlaunch")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-rlaunch", dir)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Search.NormalMode = "substring"
	cfg.Paths.Scan = []ScanPath{{Path: "/opt/apps", Extensions: []string{".desktop"}, IncludeFolders: true}}
	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Search, loaded.Search)
	assert.Equal(t, cfg.Paths.Scan, loaded.Paths.Scan)
}

func TestLogConfig(t *testing.T) {
	lc := Default().LogConfig("/var/log/rlaunch", true)
	assert.Equal(t, "/var/log/rlaunch", lc.Dir)
	assert.True(t, lc.Debug)
	assert.Equal(t, "json", lc.Format)
}
