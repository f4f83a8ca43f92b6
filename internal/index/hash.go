package index

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ConfigHash fingerprints the scan rules. A cache built under a different
// hash is not trusted. Every field is length-prefixed so adjacent values
// cannot run together.
func ConfigHash(rules []ScanRule) uint64 {
	d := xxhash.New()
	var buf []byte

	writeString := func(s string) {
		buf = binary.AppendUvarint(buf[:0], uint64(len(s)))
		_, _ = d.Write(buf)
		_, _ = d.WriteString(s)
	}

	buf = binary.AppendUvarint(buf[:0], uint64(len(rules)))
	_, _ = d.Write(buf)
	for _, rule := range rules {
		writeString(rule.Path)
		buf = binary.AppendUvarint(buf[:0], uint64(len(rule.Extensions)))
		_, _ = d.Write(buf)
		for _, ext := range rule.Extensions {
			writeString(NormalizeExtension(ext))
		}
		if rule.IncludeFolders {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	}
	return d.Sum64()
}
