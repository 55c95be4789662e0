package search

import (
	"github.com/decred/dcrd/math/uint256"

	"github.com/robvanmieghem/kawpow-search/kawpow"
)

// Target is the 256-bit upper bound a valid digest must not exceed
// (spec.md section 3), read as 32 little-endian bytes the same way a
// kawpow.Digest is.
type Target [32]byte

// MeetsTarget reports whether digest is lexicographically less than or
// equal to target under big-endian ordering of the 8 constituent 32-bit
// words (spec.md section 4.5). The comparison is expressed as a real
// 256-bit integer comparison via decred's math/uint256 rather than a
// hand-rolled word loop.
func MeetsTarget(digest kawpow.Digest, target Target) bool {
	digestNum := new(uint256.Uint256).SetBytesLE((*[32]byte)(&digest))
	targetNum := new(uint256.Uint256).SetBytesLE((*[32]byte)(&target))
	return !digestNum.Gt(targetNum)
}
