// Package kawpow implements the KawPow/ProgPoW hash pipeline: the
// Keccak-f[800] wrap, the per-nonce mix loop, and the final compaction
// that together turn a (header, nonce, DAG) triple into a digest and a
// mix hash. The package is pure and device-agnostic; it is used both as
// the bit-exact reference oracle for tests and as the CPU fallback
// search path in search/cpuref.
package kawpow

// Parameters fixed by the KawPow/ProgPoW algorithm (spec.md section 4.4).
const (
	Lanes        = 16
	Regs         = 32
	CntDag       = 64
	CntCache     = 11
	CntMath      = 18
	// DagLoads names the reference algorithm's per-fetch dword grouping;
	// this implementation loads a full 16-word item in one Dag.Item call
	// rather than four separate sub-loads, so DagLoads is not otherwise
	// referenced.
	DagLoads = 4
	CacheBytes   = 16 * 1024
	CacheWords   = CacheBytes / 4
	HeaderBytes  = 32
	DigestBytes  = 32
	DagItemBytes = 64
	DagItemWords = DagItemBytes / 4

	// OuterIterations is the number of outer mix-loop iterations run
	// per nonce (spec.md section 4.4 step 2). It is numerically equal
	// to CntDag but is a distinct parameter: CntDag counts DAG mixes
	// performed within a single outer iteration.
	OuterIterations = 64
)

// FnvOffsetBasis is the FNV-1a 32-bit offset basis used to seed every
// fold performed by fnv1a in this package.
const FnvOffsetBasis uint32 = 0x811c9dc5

// Header is the 32-byte immutable block preamble, read as 8 little-endian
// 32-bit words.
type Header [HeaderBytes]byte

// Digest is the 256-bit final hash produced by the mix pipeline.
type Digest [DigestBytes]byte

// MixHash is the 256-bit reduced mix state returned alongside Digest.
type MixHash [DigestBytes]byte
