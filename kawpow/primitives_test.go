package kawpow

import (
	"math"
	"testing"
)

func TestFnv1a(t *testing.T) {
	got := fnv1a(FnvOffsetBasis, 0x12345678)
	want := (FnvOffsetBasis ^ 0x12345678) * 0x01000193
	if got != want {
		t.Fatalf("got 0x%08x, want 0x%08x", got, want)
	}
}

func TestRotl32Rotr32RoundTrip(t *testing.T) {
	x := uint32(0xdeadbeef)
	for n := uint32(0); n < 64; n++ {
		if got := rotr32(rotl32(x, n), n); got != x {
			t.Fatalf("n=%d: rotr32(rotl32(x,n),n) = 0x%08x, want 0x%08x", n, got, x)
		}
	}
}

func TestRotl32ModReducesAmount(t *testing.T) {
	x := uint32(1)
	if rotl32(x, 1) != rotl32(x, 33) {
		t.Fatal("rotation amount must be reduced modulo 32")
	}
}

func TestClz32(t *testing.T) {
	cases := map[uint32]uint32{
		0:          32,
		1:          31,
		0x80000000: 0,
		0x00010000: 15,
	}
	for in, want := range cases {
		if got := clz32(in); got != want {
			t.Errorf("clz32(0x%08x) = %d, want %d", in, got, want)
		}
	}
}

func TestPopcount32(t *testing.T) {
	cases := map[uint32]uint32{
		0:          0,
		0xffffffff: 32,
		0x0f0f0f0f: 16,
	}
	for in, want := range cases {
		if got := popcount32(in); got != want {
			t.Errorf("popcount32(0x%08x) = %d, want %d", in, got, want)
		}
	}
}

func TestUmulhi32(t *testing.T) {
	a, b := uint32(math.MaxUint32), uint32(math.MaxUint32)
	want := uint32((uint64(a) * uint64(b)) >> 32)
	if got := umulhi32(a, b); got != want {
		t.Fatalf("got 0x%08x, want 0x%08x", got, want)
	}
}
