package binfmt

import (
	"cmp"
	"maps"
	"slices"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Codec is a length-aware binary serializer. The method set matches mus-go
// serializers so primitives from mus-go/ord and mus-go/varint plug in directly.
type Codec[T any] interface {
	Size(v T) int
	Marshal(v T, bs []byte) int
	Unmarshal(bs []byte) (T, int, error)
}

// Primitive codecs shared by every persisted payload.
var (
	String Codec[string] = ord.String
	Bool   Codec[bool]   = ord.Bool
	Uint32 Codec[uint32] = varint.Uint32
	Uint64 Codec[uint64] = varint.Uint64
	Int32  Codec[int32]  = varint.Int32
)

// Slice returns a codec for []T prefixed with a varint length.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem}
}

type sliceCodec[T any] struct {
	elem Codec[T]
}

func (c sliceCodec[T]) Size(v []T) int {
	size := varint.Uint64.Size(uint64(len(v)))
	for _, e := range v {
		size += c.elem.Size(e)
	}
	return size
}

func (c sliceCodec[T]) Marshal(v []T, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, e := range v {
		n += c.elem.Marshal(e, bs[n:])
	}
	return n
}

func (c sliceCodec[T]) Unmarshal(bs []byte) ([]T, int, error) {
	length, n, err := unmarshalLength(bs)
	if err != nil {
		return nil, n, err
	}
	out := make([]T, 0, length)
	for range length {
		e, m, err := c.elem.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		out = append(out, e)
	}
	return out, n, nil
}

// Map returns a codec for map[K]V. Keys are written in ascending order so equal
// maps always encode to identical bytes.
func Map[K cmp.Ordered, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val}
}

type mapCodec[K cmp.Ordered, V any] struct {
	key Codec[K]
	val Codec[V]
}

func (c mapCodec[K, V]) Size(v map[K]V) int {
	size := varint.Uint64.Size(uint64(len(v)))
	for k, e := range v {
		size += c.key.Size(k) + c.val.Size(e)
	}
	return size
}

func (c mapCodec[K, V]) Marshal(v map[K]V, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, k := range slices.Sorted(maps.Keys(v)) {
		n += c.key.Marshal(k, bs[n:])
		n += c.val.Marshal(v[k], bs[n:])
	}
	return n
}

func (c mapCodec[K, V]) Unmarshal(bs []byte) (map[K]V, int, error) {
	length, n, err := unmarshalLength(bs)
	if err != nil {
		return nil, n, err
	}
	out := make(map[K]V, length)
	for range length {
		k, m, err := c.key.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		e, m, err := c.val.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		out[k] = e
	}
	return out, n, nil
}

// Optional returns a codec for *T written as a presence flag followed by the value.
func Optional[T any](elem Codec[T]) Codec[*T] {
	return optionalCodec[T]{elem: elem}
}

type optionalCodec[T any] struct {
	elem Codec[T]
}

func (c optionalCodec[T]) Size(v *T) int {
	if v == nil {
		return Bool.Size(false)
	}
	return Bool.Size(true) + c.elem.Size(*v)
}

func (c optionalCodec[T]) Marshal(v *T, bs []byte) int {
	if v == nil {
		return Bool.Marshal(false, bs)
	}
	n := Bool.Marshal(true, bs)
	return n + c.elem.Marshal(*v, bs[n:])
}

func (c optionalCodec[T]) Unmarshal(bs []byte) (*T, int, error) {
	present, n, err := Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, m, err := c.elem.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

// unmarshalLength reads a collection length and rejects values that cannot
// possibly fit in the remaining bytes (every element takes at least one byte).
func unmarshalLength(bs []byte) (int, int, error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return 0, n, err
	}
	if length > uint64(len(bs)-n) {
		return 0, n, ErrLength
	}
	return int(length), n, nil
}
