package index

import (
	"github.com/kk-code-lab/rlaunch/internal/binfmt"
)

// Cache file identification.
var CacheMagic = binfmt.Magic{'I', 'D', 'X', 'C'}

const (
	// CacheVersion is the envelope version of index.bin.
	CacheVersion uint32 = 1
	// FormatVersion is the payload layout version stored inside the cache.
	FormatVersion uint32 = 1
	// CacheFileName is the cache file name inside the config directory.
	CacheFileName = "index.bin"
)

// Cache is the persisted result of the last scan.
type Cache struct {
	FormatVersion uint32
	BuiltAt       uint64
	Entries       []Entry
	ConfigHash    uint64
}

type entryCodec struct{}

func (entryCodec) Size(e Entry) int {
	return binfmt.String.Size(e.Name) + binfmt.String.Size(e.TargetPath) + binfmt.Bool.Size(e.IsFolder)
}

func (entryCodec) Marshal(e Entry, bs []byte) int {
	n := binfmt.String.Marshal(e.Name, bs)
	n += binfmt.String.Marshal(e.TargetPath, bs[n:])
	return n + binfmt.Bool.Marshal(e.IsFolder, bs[n:])
}

func (entryCodec) Unmarshal(bs []byte) (e Entry, n int, err error) {
	var m int
	if e.Name, m, err = binfmt.String.Unmarshal(bs); err != nil {
		return e, m, err
	}
	n += m
	if e.TargetPath, m, err = binfmt.String.Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	e.IsFolder, m, err = binfmt.Bool.Unmarshal(bs[n:])
	return e, n + m, err
}

var entriesCodec = binfmt.Slice[Entry](entryCodec{})

type cacheCodec struct{}

func (cacheCodec) Size(c Cache) int {
	return binfmt.Uint32.Size(c.FormatVersion) +
		binfmt.Uint64.Size(c.BuiltAt) +
		entriesCodec.Size(c.Entries) +
		binfmt.Uint64.Size(c.ConfigHash)
}

func (cacheCodec) Marshal(c Cache, bs []byte) int {
	n := binfmt.Uint32.Marshal(c.FormatVersion, bs)
	n += binfmt.Uint64.Marshal(c.BuiltAt, bs[n:])
	n += entriesCodec.Marshal(c.Entries, bs[n:])
	return n + binfmt.Uint64.Marshal(c.ConfigHash, bs[n:])
}

func (cacheCodec) Unmarshal(bs []byte) (c Cache, n int, err error) {
	var m int
	if c.FormatVersion, m, err = binfmt.Uint32.Unmarshal(bs); err != nil {
		return c, m, err
	}
	n += m
	if c.BuiltAt, m, err = binfmt.Uint64.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Entries, m, err = entriesCodec.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	c.ConfigHash, m, err = binfmt.Uint64.Unmarshal(bs[n:])
	return c, n + m, err
}

// CacheCodec encodes Cache payloads.
var CacheCodec binfmt.Codec[Cache] = cacheCodec{}

// EncodeCache wraps c in the IDXC envelope.
func EncodeCache(c Cache) []byte {
	return binfmt.Encode(CacheMagic, CacheVersion, c, CacheCodec)
}

// DecodeCache reverses EncodeCache; ok is false for any malformed input.
func DecodeCache(data []byte) (Cache, bool) {
	return binfmt.Decode(data, CacheMagic, CacheVersion, CacheCodec)
}
