package placement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
)

func TestCurrentRoundTrip(t *testing.T) {
	st := State{
		Search:       &Point{X: 120, Y: 340},
		Settings:     &Point{X: -640, Y: 480},
		SettingsSize: &Size{Width: 760, Height: 560},
	}
	data := Encode(st)
	_, version, ok := binfmt.Header(data)
	require.True(t, ok)
	assert.Equal(t, versionCurrent, version)

	got, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, st, got)
}

func TestDecodeUpgradesPair(t *testing.T) {
	old := pairState{Search: &Point{X: 120, Y: 340}, Settings: &Point{X: 640, Y: 480}}
	data := binfmt.Encode(Magic, versionPair, old, binfmt.Codec[pairState](pairCodec{}))

	_, ok := binfmt.Decode(data, Magic, versionCurrent, binfmt.Codec[State](stateCodec{}))
	require.False(t, ok, "a version 2 file is not readable as version 3")

	got, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, State{Search: old.Search, Settings: old.Settings}, got)
}

func TestDecodeUpgradesPoint(t *testing.T) {
	data := binfmt.Encode(Magic, versionPoint, Point{X: 5, Y: 6}, binfmt.Codec[Point](pointCodec{}))
	got, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, State{Search: &Point{X: 5, Y: 6}}, got)
}

func TestDecodeRejectsUnknown(t *testing.T) {
	data := binfmt.Encode(Magic, 9, Point{}, binfmt.Codec[Point](pointCodec{}))
	_, ok := Decode(data)
	assert.False(t, ok)

	_, ok = Decode([]byte("WNDW"))
	assert.False(t, ok)
}

func TestStoreSettersPreserveOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := NewStore(path)
	assert.Equal(t, State{}, s.Load())

	require.NoError(t, s.SetSearch(Point{X: 1, Y: 2}))
	require.NoError(t, s.SetSettingsSize(Size{Width: 800, Height: 600}))
	require.NoError(t, s.SetSettings(Point{X: 3, Y: 4}))

	got := NewStore(path).Load()
	assert.Equal(t, State{
		Search:       &Point{X: 1, Y: 2},
		Settings:     &Point{X: 3, Y: 4},
		SettingsSize: &Size{Width: 800, Height: 600},
	}, got)
}

func TestStoreUpgradesOldFileOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, binfmt.Encode(Magic, versionPoint, Point{X: 7, Y: 8}, binfmt.Codec[Point](pointCodec{})), 0o644))

	s := NewStore(path)
	require.NoError(t, s.SetSettings(Point{X: 1, Y: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, version, _ := binfmt.Header(data)
	assert.Equal(t, versionCurrent, version)
	assert.Equal(t, &Point{X: 7, Y: 8}, s.Load().Search)
}

func TestStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("not a placement"), 0o644))
	assert.Equal(t, State{}, NewStore(path).Load())
}
