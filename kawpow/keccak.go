package kawpow

import "encoding/binary"

// keccakRounds is the number of rounds in Keccak-f[800] (spec.md section
// 4.3).
const keccakRounds = 22

// keccakRoundConstants are the 22 round constants for Keccak-f[800],
// indexed 0..21.
var keccakRoundConstants = [keccakRounds]uint32{
	0x00000001, 0x00000082, 0x0000808a, 0x00008000,
	0x0000808b, 0x80000001, 0x80008081, 0x80008009,
	0x0000008a, 0x00000088, 0x80008009, 0x80000008,
	0x80008002, 0x80008003, 0x80008002, 0x80000080,
	0x0000800a, 0x8000000a, 0x80008081, 0x80008080,
	0x80000001, 0x80008008,
}

// keccakRhoOffsets are the per-lane rotation amounts used by the Rho step.
var keccakRhoOffsets = [25]uint32{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// keccakPiIndices is the lane permutation used by the Pi step: lane i of
// the input moves to position keccakPiIndices[i] of B.
var keccakPiIndices = [25]int{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

// keccakF800Round performs one Theta/Rho/Pi/Chi/Iota round over a 25-word
// state in place.
func keccakF800Round(state *[25]uint32, round int) {
	// Theta
	var c [5]uint32
	for x := 0; x < 5; x++ {
		c[x] = state[x] ^ state[x+5] ^ state[x+10] ^ state[x+15] ^ state[x+20]
	}
	var d [5]uint32
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ rotl32(c[(x+1)%5], 1)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 25; y += 5 {
			state[y+x] ^= d[x]
		}
	}

	// Rho + Pi
	var b [25]uint32
	for i := 0; i < 25; i++ {
		b[keccakPiIndices[i]] = rotl32(state[i], keccakRhoOffsets[i])
	}

	// Chi
	for y := 0; y < 25; y += 5 {
		t0, t1, t2, t3, t4 := b[y], b[y+1], b[y+2], b[y+3], b[y+4]
		state[y+0] = t0 ^ (^t1 & t2)
		state[y+1] = t1 ^ (^t2 & t3)
		state[y+2] = t2 ^ (^t3 & t4)
		state[y+3] = t3 ^ (^t4 & t0)
		state[y+4] = t4 ^ (^t0 & t1)
	}

	// Iota
	state[0] ^= keccakRoundConstants[round]
}

// keccakF800 runs the full 22-round Keccak-f[800] permutation over state
// in place.
func keccakF800(state *[25]uint32) {
	for r := 0; r < keccakRounds; r++ {
		keccakF800Round(state, r)
	}
}

// keccakSeed absorbs (header, nonce) into a fresh 25-word state and runs
// Keccak-f[800]; it returns the resulting seed, the first two words of the
// post-permutation state packed as (state[0]<<32)|state[1], plus the full
// post-permutation state for reuse by the final compaction step.
func keccakSeed(header *Header, nonce uint64) (seed uint64, state [25]uint32) {
	for i := 0; i < 8; i++ {
		state[i] = binary.LittleEndian.Uint32(header[i*4:])
	}
	state[8] = lowWord(nonce)
	state[9] = highWord(nonce)
	// state[10..25] stay zero.

	keccakF800(&state)

	seed = (uint64(state[0]) << 32) | uint64(state[1])
	return seed, state
}

// keccakFinal packs finalMix (8 words) and seedState (first 8 words of the
// post-seed-permutation state) into a 25-word state, runs Keccak-f[800],
// and returns the resulting digest as 8 little-endian words.
func keccakFinal(finalMix *[8]uint32, seedState *[25]uint32) [8]uint32 {
	var state [25]uint32
	for i := 0; i < 8; i++ {
		state[i] = finalMix[i]
	}
	for i := 0; i < 8; i++ {
		state[8+i] = seedState[i]
	}
	// state[16..25] stay zero.

	keccakF800(&state)

	var out [8]uint32
	copy(out[:], state[:8])
	return out
}
