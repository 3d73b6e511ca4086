package sweep

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/katalvlaran/pairspec/selection"
)

// Fingerprint hashes a parameter point into a stable 32-byte cache
// key. Names are hashed in sorted order with explicit lengths, so two
// maps with the same entries fingerprint identically regardless of
// insertion order and no name/value boundary can be confused.
func Fingerprint(at selection.Params) [32]byte {
	names := make([]string, 0, len(at))
	for name := range at {
		names = append(names, name)
	}
	sort.Strings(names)

	h := blake3.New()
	var buf [8]byte
	for _, name := range names {
		binary.BigEndian.PutUint64(buf[:], uint64(len(name)))
		h.Write(buf[:])
		h.Write([]byte(name))
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(at[name]))
		h.Write(buf[:])
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}
