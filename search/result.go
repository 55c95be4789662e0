package search

import "github.com/robvanmieghem/kawpow-search/kawpow"

// Result is a single matching slot as written back by the device: the
// nonce that met the target and the digest/mix pair it produced.
// Nonce is 0 when no candidate in the dispatched range met the
// target. A hit at nonce 0 leaves the slot at 0 as well, so it is
// reported the same as no hit.
type Result struct {
	Nonce uint64
	Hash  kawpow.Digest
	Mix   kawpow.MixHash
}

// Found reports whether the device wrote a candidate into this slot.
func (r Result) Found() bool {
	return r.Nonce != 0
}
