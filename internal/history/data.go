package history

import (
	"maps"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
)

// File identification for history.bin.
var Magic = binfmt.Magic{'H', 'I', 'S', 'T'}

const (
	// Version is the current envelope version.
	Version uint32 = 1
	// FileName is the history file name inside the config directory.
	FileName = "history.bin"
)

// GlobalEntry is the usage record of one launch target.
type GlobalEntry struct {
	LaunchCount  uint32
	LastLaunched uint64
}

// Data is the persisted history payload.
//
// Query is keyed by normalized query, then by target path.
type Data struct {
	Global          map[string]GlobalEntry
	Query           map[string]map[string]uint32
	FolderExpansion map[string]uint32
}

func emptyData() Data {
	return Data{
		Global:          make(map[string]GlobalEntry),
		Query:           make(map[string]map[string]uint32),
		FolderExpansion: make(map[string]uint32),
	}
}

// clone returns a deep copy of d.
func (d Data) clone() Data {
	out := Data{
		Global:          maps.Clone(d.Global),
		Query:           make(map[string]map[string]uint32, len(d.Query)),
		FolderExpansion: maps.Clone(d.FolderExpansion),
	}
	for q, targets := range d.Query {
		out.Query[q] = maps.Clone(targets)
	}
	if out.Global == nil {
		out.Global = make(map[string]GlobalEntry)
	}
	if out.FolderExpansion == nil {
		out.FolderExpansion = make(map[string]uint32)
	}
	return out
}

type globalEntryCodec struct{}

func (globalEntryCodec) Size(e GlobalEntry) int {
	return binfmt.Uint32.Size(e.LaunchCount) + binfmt.Uint64.Size(e.LastLaunched)
}

func (globalEntryCodec) Marshal(e GlobalEntry, bs []byte) int {
	n := binfmt.Uint32.Marshal(e.LaunchCount, bs)
	return n + binfmt.Uint64.Marshal(e.LastLaunched, bs[n:])
}

func (globalEntryCodec) Unmarshal(bs []byte) (e GlobalEntry, n int, err error) {
	if e.LaunchCount, n, err = binfmt.Uint32.Unmarshal(bs); err != nil {
		return e, n, err
	}
	var m int
	e.LastLaunched, m, err = binfmt.Uint64.Unmarshal(bs[n:])
	return e, n + m, err
}

var (
	globalCodec = binfmt.Map[string, GlobalEntry](binfmt.String, globalEntryCodec{})
	countsCodec = binfmt.Map[string, uint32](binfmt.String, binfmt.Uint32)
	queryCodec  = binfmt.Map[string, map[string]uint32](binfmt.String, countsCodec)
)

type dataCodec struct{}

func (dataCodec) Size(d Data) int {
	return globalCodec.Size(d.Global) + queryCodec.Size(d.Query) + countsCodec.Size(d.FolderExpansion)
}

func (dataCodec) Marshal(d Data, bs []byte) int {
	n := globalCodec.Marshal(d.Global, bs)
	n += queryCodec.Marshal(d.Query, bs[n:])
	return n + countsCodec.Marshal(d.FolderExpansion, bs[n:])
}

func (dataCodec) Unmarshal(bs []byte) (d Data, n int, err error) {
	var m int
	if d.Global, m, err = globalCodec.Unmarshal(bs); err != nil {
		return d, m, err
	}
	n += m
	if d.Query, m, err = queryCodec.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	d.FolderExpansion, m, err = countsCodec.Unmarshal(bs[n:])
	return d, n + m, err
}

// Codec encodes Data payloads.
var Codec binfmt.Codec[Data] = dataCodec{}

// Encode wraps d in the HIST envelope.
func Encode(d Data) []byte {
	return binfmt.Encode(Magic, Version, d, Codec)
}

// Decode reverses Encode; ok is false for any malformed input.
func Decode(data []byte) (Data, bool) {
	return binfmt.Decode(data, Magic, Version, Codec)
}
