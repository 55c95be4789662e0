package kawpow

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBadDagSize is returned when a DAG's byte size does not satisfy the
// invariants required by the mix loop (spec.md section 3: dag_size is
// divisible by 64 and at least large enough to source the 16 KiB hot
// cache).
var ErrBadDagSize = errors.New("kawpow: dag size must be a multiple of 64 bytes and at least 16384 bytes")

// Dag is the read-only, byte-addressed mixing table described in spec.md
// section 3. Generating and caching the DAG is explicitly out of scope for
// this package (spec.md section 1); Dag only names the shape a caller's
// DAG bytes must have to be usable by Hash and by the search kernel.
type Dag struct {
	bytes []byte
}

// NewDag wraps raw DAG bytes, validating the size invariants from spec.md
// section 3 and section 7 (a dag_size of at least 16384 bytes is required
// so the hot-cache preload in spec.md section 4.5/4.4 is well-defined).
func NewDag(bytes []byte) (*Dag, error) {
	if len(bytes)%DagItemBytes != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadDagSize, len(bytes))
	}
	if len(bytes) < CacheBytes {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadDagSize, len(bytes))
	}
	return &Dag{bytes: bytes}, nil
}

// Size returns the DAG size in bytes.
func (d *Dag) Size() uint64 { return uint64(len(d.bytes)) }

// Bytes returns the DAG's underlying byte slice, for device upload.
// The caller must not mutate it; Dag is specified as read-only memory.
func (d *Dag) Bytes() []byte { return d.bytes }

// Items returns the number of 64-byte items in the DAG (dag_size/64).
func (d *Dag) Items() uint64 { return d.Size() / DagItemBytes }

// Item returns the 16 little-endian 32-bit words of the DAG item at the
// given item index, which the caller must have already reduced modulo
// Items().
func (d *Dag) Item(index uint64) [DagItemWords]uint32 {
	var item [DagItemWords]uint32
	base := index * DagItemBytes
	for k := 0; k < DagItemWords; k++ {
		item[k] = binary.LittleEndian.Uint32(d.bytes[base+uint64(k*4):])
	}
	return item
}

// cacheWord returns word i (0 <= i < CacheWords) of the hot cache, the
// first 16 KiB of the DAG reinterpreted as little-endian 32-bit words
// (spec.md section 4.4.c / section 9: the cache value must be sourced from
// the DAG, never from a PRNG).
func (d *Dag) cacheWord(i uint32) uint32 {
	return binary.LittleEndian.Uint32(d.bytes[uint64(i)*4:])
}

// NewTestDag builds a deterministic synthetic DAG of the given byte size,
// filled with dag[i] = (i * 0x01000193) mod 2^32 bytewise - the fixture
// spec.md section 8 scenario S3 calls for.
func NewTestDag(size int) (*Dag, error) {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(uint32(i) * 0x01000193)
	}
	return NewDag(buf)
}
