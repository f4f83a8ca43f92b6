// Package placement remembers where the launcher's windows were last shown.
// The file has gone through three layouts; older ones are upgraded on read
// and the current layout is always written.
package placement

import (
	"github.com/kk-code-lab/rlaunch/internal/binfmt"
)

// Magic identifies window.bin.
var Magic = binfmt.Magic{'W', 'N', 'D', 'W'}

const (
	versionPoint   uint32 = 1
	versionPair    uint32 = 2
	versionCurrent uint32 = 3

	// FileName is the placement file name inside the config directory.
	FileName = "window.bin"
)

// Point is a window's top-left corner in screen coordinates.
type Point struct {
	X, Y int32
}

// Size is a window's outer size.
type Size struct {
	Width, Height int32
}

// State is the current payload. Nil fields were never recorded.
type State struct {
	Search       *Point
	Settings     *Point
	SettingsSize *Size
}

// pairState is the version 2 payload.
type pairState struct {
	Search   *Point
	Settings *Point
}

type pointCodec struct{}

func (pointCodec) Size(p Point) int {
	return binfmt.Int32.Size(p.X) + binfmt.Int32.Size(p.Y)
}

func (pointCodec) Marshal(p Point, bs []byte) int {
	n := binfmt.Int32.Marshal(p.X, bs)
	return n + binfmt.Int32.Marshal(p.Y, bs[n:])
}

func (pointCodec) Unmarshal(bs []byte) (p Point, n int, err error) {
	if p.X, n, err = binfmt.Int32.Unmarshal(bs); err != nil {
		return p, n, err
	}
	var m int
	p.Y, m, err = binfmt.Int32.Unmarshal(bs[n:])
	return p, n + m, err
}

type sizeCodec struct{}

func (sizeCodec) Size(s Size) int {
	return binfmt.Int32.Size(s.Width) + binfmt.Int32.Size(s.Height)
}

func (sizeCodec) Marshal(s Size, bs []byte) int {
	n := binfmt.Int32.Marshal(s.Width, bs)
	return n + binfmt.Int32.Marshal(s.Height, bs[n:])
}

func (sizeCodec) Unmarshal(bs []byte) (s Size, n int, err error) {
	if s.Width, n, err = binfmt.Int32.Unmarshal(bs); err != nil {
		return s, n, err
	}
	var m int
	s.Height, m, err = binfmt.Int32.Unmarshal(bs[n:])
	return s, n + m, err
}

var (
	optPoint = binfmt.Optional[Point](pointCodec{})
	optSize  = binfmt.Optional[Size](sizeCodec{})
)

type pairCodec struct{}

func (pairCodec) Size(s pairState) int {
	return optPoint.Size(s.Search) + optPoint.Size(s.Settings)
}

func (pairCodec) Marshal(s pairState, bs []byte) int {
	n := optPoint.Marshal(s.Search, bs)
	return n + optPoint.Marshal(s.Settings, bs[n:])
}

func (pairCodec) Unmarshal(bs []byte) (s pairState, n int, err error) {
	if s.Search, n, err = optPoint.Unmarshal(bs); err != nil {
		return s, n, err
	}
	var m int
	s.Settings, m, err = optPoint.Unmarshal(bs[n:])
	return s, n + m, err
}

type stateCodec struct{}

func (stateCodec) Size(s State) int {
	return optPoint.Size(s.Search) + optPoint.Size(s.Settings) + optSize.Size(s.SettingsSize)
}

func (stateCodec) Marshal(s State, bs []byte) int {
	n := optPoint.Marshal(s.Search, bs)
	n += optPoint.Marshal(s.Settings, bs[n:])
	return n + optSize.Marshal(s.SettingsSize, bs[n:])
}

func (stateCodec) Unmarshal(bs []byte) (s State, n int, err error) {
	var m int
	if s.Search, m, err = optPoint.Unmarshal(bs); err != nil {
		return s, m, err
	}
	n += m
	if s.Settings, m, err = optPoint.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	s.SettingsSize, m, err = optSize.Unmarshal(bs[n:])
	return s, n + m, err
}

var chain = []binfmt.Step[State]{
	binfmt.Current[State](versionCurrent, stateCodec{}),
	binfmt.Version(versionPair, binfmt.Codec[pairState](pairCodec{}), func(p pairState) State {
		return State{Search: p.Search, Settings: p.Settings}
	}),
	binfmt.Version(versionPoint, binfmt.Codec[Point](pointCodec{}), func(p Point) State {
		return State{Search: &p}
	}),
}

// Encode writes s in the current layout.
func Encode(s State) []byte {
	return binfmt.Encode(Magic, versionCurrent, s, binfmt.Codec[State](stateCodec{}))
}

// Decode reads any known layout, newest first.
func Decode(data []byte) (State, bool) {
	return binfmt.DecodeChain(data, Magic, chain...)
}
