package kawpow

import "math/bits"

// fnv1a folds d into h using the 32-bit FNV-1a mixing function
// (spec.md section 4.1): (h ^ d) * 0x01000193, mod 2^32.
func fnv1a(h, d uint32) uint32 {
	return (h ^ d) * 0x01000193
}

// rotl32 rotates x left by n bits, n reduced modulo 32.
func rotl32(x, n uint32) uint32 {
	return bits.RotateLeft32(x, int(n&31))
}

// rotr32 rotates x right by n bits, n reduced modulo 32.
func rotr32(x, n uint32) uint32 {
	return bits.RotateLeft32(x, -int(n&31))
}

// clz32 counts the leading zero bits of x.
func clz32(x uint32) uint32 {
	return uint32(bits.LeadingZeros32(x))
}

// popcount32 counts the set bits of x.
func popcount32(x uint32) uint32 {
	return uint32(bits.OnesCount32(x))
}

// umulhi32 returns the high 32 bits of the 64-bit product of a and b.
func umulhi32(a, b uint32) uint32 {
	hi, _ := bits.Mul32(a, b)
	return hi
}

func lowWord(v uint64) uint32  { return uint32(v) }
func highWord(v uint64) uint32 { return uint32(v >> 32) }
