// Package cpuref is the CPU reference oracle spec.md section 9 calls
// for: nonce-range scans over the portable, device-agnostic
// kawpow.Hash pipeline, used to check the device kernel's output and
// as a fallback code path that is never the primary execution strategy
// (spec.md section 1 non-goals).
package cpuref

import (
	"github.com/jrick/bitset"

	"github.com/robvanmieghem/kawpow-search/kawpow"
	"github.com/robvanmieghem/kawpow-search/search"
)

// Hit is a single nonce that met a target during a scan.
type Hit struct {
	Nonce  uint64
	Digest kawpow.Digest
	Mix    kawpow.MixHash
}

// ScanRange evaluates every nonce in [start, start+count) against dag
// and target using the pure kawpow.Hash pipeline, returning every hit
// in ascending nonce order. It is the host-side equivalent of a
// device launch wide enough to cover the whole range in one call, and
// exists so device output can be checked against it (spec.md section 8
// properties 2 and 4) and so ranges can be split and compared for
// equivalence (scenario S6).
func ScanRange(header *kawpow.Header, dag *kawpow.Dag, target search.Target, start, count uint64) []Hit {
	var hits []Hit
	for i := uint64(0); i < count; i++ {
		nonce := start + i
		digest, mix := kawpow.Hash(header, nonce, dag)
		if search.MeetsTarget(digest, target) {
			hits = append(hits, Hit{Nonce: nonce, Digest: digest, Mix: mix})
		}
	}
	log.Debugf("scanned [%d, %d): %d hits", start, start+count, len(hits))
	return hits
}

// FirstHit is ScanRange stopping at the first match, mirroring the
// first-write-wins contract of spec.md section 3 and section 8
// property 5 for a single-threaded host.
func FirstHit(header *kawpow.Header, dag *kawpow.Dag, target search.Target, start, count uint64) (Hit, bool) {
	for i := uint64(0); i < count; i++ {
		nonce := start + i
		digest, mix := kawpow.Hash(header, nonce, dag)
		if search.MeetsTarget(digest, target) {
			return Hit{Nonce: nonce, Digest: digest, Mix: mix}, true
		}
	}
	log.Debugf("no hit in [%d, %d)", start, start+count)
	return Hit{}, false
}

// CoverageSet tracks, for a range of N nonces starting at a given
// offset, which nonces have been evaluated at least once. It backs
// tests of spec.md section 8 property 4 (range coverage) with a
// compact bit-per-nonce representation rather than a map.
type CoverageSet struct {
	offset uint64
	n      int
	bits   bitset.Bytes
}

// NewCoverageSet allocates a coverage set for the n nonces starting at
// offset.
func NewCoverageSet(offset uint64, n int) *CoverageSet {
	return &CoverageSet{offset: offset, n: n, bits: bitset.NewBytes(n)}
}

// Mark records that nonce was evaluated.
func (c *CoverageSet) Mark(nonce uint64) {
	c.bits.Set(int(nonce - c.offset))
}

// MarkRange records every nonce in [start, start+count) as evaluated.
func (c *CoverageSet) MarkRange(start, count uint64) {
	for i := uint64(0); i < count; i++ {
		c.Mark(start + i)
	}
}

// FullyCovered reports whether every nonce in the set's range has been
// marked.
func (c *CoverageSet) FullyCovered() bool {
	for i := 0; i < c.n; i++ {
		if !c.bits.Get(i) {
			return false
		}
	}
	return true
}
