// Package external names the interfaces of the systems this module
// deliberately does not implement: DAG generation and caching,
// job/nonce-range dispatch, and result submission (spec.md section 1
// and section 6). None of these interfaces are implemented here; a
// host program wires concrete implementations to the search package
// from outside this module.
package external

import "context"

// DagBuilder produces the read-only DAG bytes a search job mixes
// against. The byte layout it returns must satisfy spec.md section 6:
// each 64-byte item is 16 consecutive little-endian 32-bit words.
type DagBuilder interface {
	// BuildDag returns the DAG bytes for the given epoch, or an error
	// if the epoch's DAG cannot be produced or cached.
	BuildDag(ctx context.Context, epoch uint64) (dag []byte, err error)
}

// JobDispatcher supplies non-overlapping nonce ranges across launches,
// the responsibility spec.md section 6 names for a "job dispatcher".
type JobDispatcher interface {
	// NextRange returns the next start_nonce and the count of nonces
	// the caller should search starting there.
	NextRange(ctx context.Context) (startNonce uint64, count uint64, err error)
}

// ResultConsumer is notified of a winning nonce once a launch reports
// result_nonce != 0. Submission to any pool or daemon is outside this
// module's scope.
type ResultConsumer interface {
	// SubmitResult reports a nonce that met its job's target, along
	// with the digest and mix it produced.
	SubmitResult(ctx context.Context, nonce uint64, hash, mix [32]byte) error
}
