package binfmt

import (
	"cmp"
	"slices"
)

// Step decodes one historical version of a payload and maps it forward into
// the current shape T.
type Step[T any] struct {
	version uint32
	decode  func(data []byte, magic Magic) (T, bool)
}

// Version builds a Step for payloads written as V under version. upgrade maps
// the old shape into T; fields V does not carry are left at their zero value.
func Version[T, V any](version uint32, c Codec[V], upgrade func(V) T) Step[T] {
	return Step[T]{
		version: version,
		decode: func(data []byte, magic Magic) (T, bool) {
			old, ok := Decode(data, magic, version, c)
			if !ok {
				var zero T
				return zero, false
			}
			return upgrade(old), true
		},
	}
}

// Current builds the Step for the newest version, which needs no upgrade.
func Current[T any](version uint32, c Codec[T]) Step[T] {
	return Version(version, c, func(v T) T { return v })
}

// DecodeChain tries steps from the newest version down to the oldest and
// returns the first successful decode.
func DecodeChain[T any](data []byte, magic Magic, steps ...Step[T]) (T, bool) {
	ordered := slices.Clone(steps)
	slices.SortStableFunc(ordered, func(a, b Step[T]) int {
		return cmp.Compare(b.version, a.version)
	})
	for _, step := range ordered {
		if v, ok := step.decode(data, magic); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
