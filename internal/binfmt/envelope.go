// Package binfmt implements the versioned binary envelope shared by every
// persisted artifact: a 4-byte magic, a little-endian uint32 version and a
// payload written with a mus-go style codec.
package binfmt

import (
	"encoding/binary"
	"fmt"
)

// HeaderLen is the size of the magic + version prefix.
const HeaderLen = 8

// Magic identifies the kind of payload stored in an envelope.
type Magic [4]byte

func (m Magic) String() string {
	return string(m[:])
}

// Encode serializes v with c and prepends magic and version.
func Encode[T any](magic Magic, version uint32, v T, c Codec[T]) []byte {
	out := make([]byte, HeaderLen+c.Size(v))
	copy(out, magic[:])
	binary.LittleEndian.PutUint32(out[4:HeaderLen], version)
	c.Marshal(v, out[HeaderLen:])
	return out
}

// Decode returns the payload of data when its header matches magic and version
// exactly and the body decodes cleanly. Any mismatch yields ok == false.
func Decode[T any](data []byte, magic Magic, version uint32, c Codec[T]) (v T, ok bool) {
	gotMagic, gotVersion, ok := Header(data)
	if !ok || gotMagic != magic || gotVersion != version {
		return v, false
	}
	defer func() {
		if recover() != nil {
			var zero T
			v, ok = zero, false
		}
	}()
	decoded, err := Unmarshal(data[HeaderLen:], c)
	if err != nil {
		return v, false
	}
	return decoded, true
}

// Unmarshal decodes a whole payload body with c. Bytes left over after the
// value are reported as ErrTrailingBytes.
func Unmarshal[T any](body []byte, c Codec[T]) (T, error) {
	v, n, err := c.Unmarshal(body)
	if err != nil {
		var zero T
		return zero, err
	}
	if n != len(body) {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d bytes used", ErrTrailingBytes, n, len(body))
	}
	return v, nil
}

// Header splits the envelope header off data.
func Header(data []byte) (Magic, uint32, bool) {
	var magic Magic
	if len(data) < HeaderLen {
		return magic, 0, false
	}
	copy(magic[:], data[:4])
	return magic, binary.LittleEndian.Uint32(data[4:HeaderLen]), true
}
