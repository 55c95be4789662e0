package kawpow

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroHeaderTestDag builds the 1 MiB synthetic DAG that spec.md section 8
// scenario S3 and the vectors below are computed against.
func zeroHeaderTestDag(t *testing.T) *Dag {
	t.Helper()
	d, err := NewTestDag(1024 * 1024)
	require.NoError(t, err)
	return d
}

func wordsToDigest(words [8]uint32) (d Digest) {
	for i, w := range words {
		binary.LittleEndian.PutUint32(d[i*4:], w)
	}
	return d
}

// TestHashKnownVector pins Hash(header=0x00*32, nonce, dag) over the
// spec.md section 8 S3 synthetic DAG against vectors produced by an
// independent Python re-derivation of the whole pipeline (Keccak-f[800]
// with the FIPS-202 forward Pi permutation, KISS99, and the cache/math/
// DAG/merge mix loop), not by snapshotting this package's own output; it
// guards against regressions in the mix pipeline (fnv1a folding order,
// KISS99 draw order, cache/DAG/math/merge op selection).
func TestHashKnownVector(t *testing.T) {
	dag := zeroHeaderTestDag(t)
	var header Header

	cases := []struct {
		nonce      uint64
		wantDigest [8]uint32
		wantMix    [8]uint32
	}{
		{
			nonce:      0,
			wantDigest: [8]uint32{0x1180ee49, 0x6488f680, 0xda56c11c, 0x79d10dcd, 0xa59d5baf, 0x98e27b97, 0xd3461113, 0xe7074272},
			wantMix:    [8]uint32{0x12bcce67, 0xaa6828c5, 0xf8598313, 0xb68d5e51, 0xba446d9b, 0xee24331d, 0x79271a2f, 0xcdcb6f0d},
		},
		{
			nonce:      12345,
			wantDigest: [8]uint32{0x10c3d448, 0xd5283198, 0x41df7079, 0x6dbf45b7, 0x889cee35, 0x513fe880, 0x3087e87c, 0xbd416ef4},
			wantMix:    [8]uint32{0xc8992ae7, 0xa4b88be5, 0xe06dee1f, 0x017c6a31, 0x07bbe89f, 0xb4d18275, 0x21b25cc7, 0x68f95205},
		},
	}

	for _, c := range cases {
		digest, mix := Hash(&header, c.nonce, dag)
		require.Equal(t, wordsToDigest(c.wantDigest), digest, "nonce %d digest", c.nonce)
		require.Equal(t, MixHash(wordsToDigest(c.wantMix)), mix, "nonce %d mix", c.nonce)
	}
}

// TestHashDeterministic covers spec.md section 8 property 1: two
// invocations on the same (header, nonce, dag) produce identical output.
func TestHashDeterministic(t *testing.T) {
	dag := zeroHeaderTestDag(t)
	var header Header
	header[0] = 0xaa

	d1, m1 := Hash(&header, 999, dag)
	d2, m2 := Hash(&header, 999, dag)

	if d1 != d2 || m1 != m2 {
		t.Fatal("two invocations on the same input diverged")
	}
}

func TestHashSensitiveToNonce(t *testing.T) {
	dag := zeroHeaderTestDag(t)
	var header Header

	d1, _ := Hash(&header, 0, dag)
	d2, _ := Hash(&header, 1, dag)

	if d1 == d2 {
		t.Fatal("distinct nonces produced identical digests")
	}
}

func TestRandomMathTable(t *testing.T) {
	a, b := uint32(0x12345678), uint32(0x9abcdef0)
	if got := randomMath(a, b, 0); got != a+b {
		t.Errorf("op 0 (add): got 0x%08x", got)
	}
	if got := randomMath(a, b, 1); got != a-b {
		t.Errorf("op 1 (sub): got 0x%08x", got)
	}
	if got := randomMath(a, b, 4); got != a^b {
		t.Errorf("op 4 (xor): got 0x%08x", got)
	}
	if got := randomMath(a, b, 7); got != popcount32(a) {
		t.Errorf("op 7 (popcount): got 0x%08x", got)
	}
	if got := randomMath(a, b, 8); got != clz32(a) {
		t.Errorf("op 8 (clz): got 0x%08x", got)
	}
}

func TestRandomMergeTable(t *testing.T) {
	a, b := uint32(0xff00ff00), uint32(0x00ff00ff)
	if got := randomMerge(a, b, 2); got != 0 {
		t.Errorf("op 2 (and): got 0x%08x, want 0", got)
	}
	if got := randomMerge(a, b, 3); got != 0xffffffff {
		t.Errorf("op 3 (or): got 0x%08x, want 0xffffffff", got)
	}
	if got := randomMerge(a, b, 4); got != 0xffffffff {
		t.Errorf("op 4 (xor): got 0x%08x, want 0xffffffff", got)
	}
}
