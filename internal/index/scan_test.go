package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestScanMatchesExtensionsRecursively(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "notepad.exe"))
	touch(t, filepath.Join(root, "readme.txt"))
	touch(t, filepath.Join(root, "Games", "Solitaire.LNK"))

	entries, err := Scan(context.Background(), []ScanRule{{Path: root, Extensions: []string{".exe", "lnk"}}})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "Solitaire", TargetPath: filepath.Join(root, "Games", "Solitaire.LNK")},
		{Name: "notepad", TargetPath: filepath.Join(root, "notepad.exe")},
	}, entries)
}

func TestScanDedupsByLowercasedNameAcrossRules(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(first, "tool.exe"))
	touch(t, filepath.Join(second, "tool.exe"))
	touch(t, filepath.Join(second, "APP.EXE"))
	touch(t, filepath.Join(second, "sub", "app.exe"))

	rules := []ScanRule{
		{Path: first, Extensions: []string{".exe"}},
		{Path: second, Extensions: []string{".exe"}},
	}
	entries, err := New("", WithWorkers(2)).Scan(context.Background(), rules)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join(first, "tool.exe"), entries[0].TargetPath)
	assert.Equal(t, "APP", entries[1].Name)
	assert.Equal(t, filepath.Join(second, "APP.EXE"), entries[1].TargetPath)
}

func TestScanIncludeFoldersEmitsFolderBeforeContents(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Tools", "tools.exe"))

	entries, err := Scan(context.Background(), []ScanRule{{Path: root, Extensions: []string{".exe"}, IncludeFolders: true}})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "Tools", TargetPath: filepath.Join(root, "Tools"), IsFolder: true},
		{Name: "tools", TargetPath: filepath.Join(root, "Tools", "tools.exe")},
	}, entries)
}

func TestScanFolderNamespaceDedupsFolders(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(a, "Docs"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(b, "docs"), 0o755))

	rules := []ScanRule{
		{Path: a, IncludeFolders: true},
		{Path: b, IncludeFolders: true},
	}
	entries, err := Scan(context.Background(), rules)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(a, "Docs"), entries[0].TargetPath)
}

func TestScanSkipsMissingRoot(t *testing.T) {
	entries, err := Scan(context.Background(), []ScanRule{{Path: filepath.Join(t.TempDir(), "nope"), Extensions: []string{".exe"}}})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScanIgnoresExtensionOnlyNames(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".exe"))
	touch(t, filepath.Join(root, "hoge.exe.bak"))

	entries, err := Scan(context.Background(), []ScanRule{{Path: root, Extensions: []string{".exe"}}})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScanCanceled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.exe"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, []ScanRule{{Path: root, Extensions: []string{".exe"}}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".exe", NormalizeExtension("EXE"))
	assert.Equal(t, ".lnk", NormalizeExtension(" .Lnk "))
	assert.Equal(t, "", NormalizeExtension("."))
	assert.Equal(t, "", NormalizeExtension(""))
}

func TestConfigHash(t *testing.T) {
	base := []ScanRule{{Path: "/apps", Extensions: []string{".exe"}}}
	assert.Equal(t, ConfigHash(base), ConfigHash([]ScanRule{{Path: "/apps", Extensions: []string{".exe"}}}))
	assert.Equal(t, ConfigHash(base), ConfigHash([]ScanRule{{Path: "/apps", Extensions: []string{"EXE"}}}))

	variants := [][]ScanRule{
		{{Path: "/apps2", Extensions: []string{".exe"}}},
		{{Path: "/apps", Extensions: []string{".lnk"}}},
		{{Path: "/apps", Extensions: []string{".exe"}, IncludeFolders: true}},
		{{Path: "/ap", Extensions: []string{"ps.exe"}}},
		append(base, ScanRule{Path: "/more"}),
	}
	for _, v := range variants {
		assert.NotEqual(t, ConfigHash(base), ConfigHash(v), "%+v", v)
	}
}

func TestEqual(t *testing.T) {
	a := []Entry{{Name: "a", TargetPath: "/a"}}
	assert.True(t, Equal(a, []Entry{{Name: "a", TargetPath: "/a"}}))
	assert.True(t, Equal(nil, []Entry{}))
	assert.False(t, Equal(a, []Entry{{Name: "a", TargetPath: "/a", IsFolder: true}}))
	assert.False(t, Equal(a, nil))
	assert.Equal(t, []string{"a"}, names(a))
}
