package search

// kernelSource is the OpenCL C translation of the math core in package
// kawpow plus the search dispatcher described in spec.md section 4.5.
// It is built once per device by Launcher and invoked through the
// kawpow_search entry point; arguments follow the kernel entry contract
// of spec.md section 6 in order.
const kernelSource = `
#pragma OPENCL EXTENSION cl_khr_int64_base_atomics : enable
#pragma OPENCL EXTENSION cl_khr_int64_extended_atomics : enable

inline static uint fnv1a(uint h, uint d) {
	return (h ^ d) * 0x01000193U;
}

inline static uint rotl32(uint x, uint n) {
	n &= 31U;
	return (x << n) | (x >> ((32U - n) & 31U));
}

inline static uint rotr32(uint x, uint n) {
	n &= 31U;
	return (x >> n) | (x << ((32U - n) & 31U));
}

#define FNV_OFFSET_BASIS 0x811c9dc5U
#define LANES 16
#define REGS 32
#define CNT_DAG 64
#define CNT_CACHE 11
#define CNT_MATH 18
#define CACHE_BYTES 16384U
#define CACHE_WORDS (CACHE_BYTES / 4U)

typedef struct {
	uint z, w, jsr, jcong;
} kiss99_t;

inline static void kiss99_init(kiss99_t *s, ulong seed, uint laneID) {
	s->z = fnv1a(FNV_OFFSET_BASIS, (uint)seed);
	s->w = fnv1a(s->z, (uint)(seed >> 32));
	s->jsr = fnv1a(s->w, laneID);
	s->jcong = fnv1a(s->jsr, laneID + 1U);
}

inline static uint kiss99_next(kiss99_t *s) {
	s->z = 36969U * (s->z & 0xFFFFU) + (s->z >> 16);
	s->w = 18000U * (s->w & 0xFFFFU) + (s->w >> 16);
	s->jsr ^= s->jsr << 17;
	s->jsr ^= s->jsr >> 13;
	s->jsr ^= s->jsr << 5;
	s->jcong = 69069U * s->jcong + 1234567U;
	return (((s->z << 16) + s->w) ^ s->jcong) ^ s->jsr;
}

__constant uint keccak_rc[22] = {
	0x00000001U, 0x00000082U, 0x0000808aU, 0x00008000U,
	0x0000808bU, 0x80000001U, 0x80008081U, 0x80008009U,
	0x0000008aU, 0x00000088U, 0x80008009U, 0x80000008U,
	0x80008002U, 0x80008003U, 0x80008002U, 0x80000080U,
	0x0000800aU, 0x8000000aU, 0x80008081U, 0x80008080U,
	0x80000001U, 0x80008008U,
};

__constant uint keccak_rho[25] = {
	0,  1,  62, 28, 27,
	36, 44, 6,  55, 20,
	3,  10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2,  61, 56, 14,
};

__constant uint keccak_pi[25] = {
	0,  10, 20, 5,  15,
	16, 1,  11, 21, 6,
	7,  17, 2,  12, 22,
	23, 8,  18, 3,  13,
	14, 24, 9,  19, 4,
};

inline static void keccak_f800(uint *st) {
	for (int round = 0; round < 22; round++) {
		uint c[5], d[5];
		for (int x = 0; x < 5; x++) {
			c[x] = st[x] ^ st[x + 5] ^ st[x + 10] ^ st[x + 15] ^ st[x + 20];
		}
		for (int x = 0; x < 5; x++) {
			d[x] = c[(x + 4) % 5] ^ rotl32(c[(x + 1) % 5], 1);
		}
		for (int i = 0; i < 25; i++) {
			st[i] ^= d[i % 5];
		}

		uint b[25];
		for (int i = 0; i < 25; i++) {
			b[keccak_pi[i]] = rotl32(st[i], keccak_rho[i]);
		}

		for (int y = 0; y < 5; y++) {
			for (int x = 0; x < 5; x++) {
				st[y * 5 + x] = b[y * 5 + x] ^ ((~b[y * 5 + (x + 1) % 5]) & b[y * 5 + (x + 2) % 5]);
			}
		}

		st[0] ^= keccak_rc[round];
	}
}

inline static uint random_math(uint a, uint b, uint r) {
	switch (r % 9) {
	case 0: return a + b;
	case 1: return a - b;
	case 2: return a * b;
	case 3: return mul_hi(a, b);
	case 4: return a ^ b;
	case 5: return rotl32(a, b & 31U);
	case 6: return rotr32(a, b & 31U);
	case 7: return popcount(a);
	default: return clz(a);
	}
}

inline static uint random_merge(uint a, uint b, uint r) {
	switch (r % 5) {
	case 0: return a + b;
	case 1: return a * b;
	case 2: return a & b;
	case 3: return a | b;
	default: return a ^ b;
	}
}

__kernel void kawpow_search(
	__global const uchar *header,
	uint header_len,
	__global const uchar *dag,
	ulong dag_size,
	__global const uchar *target,
	ulong start_nonce,
	__global volatile ulong *result_nonce,
	__global uchar *result_hash,
	__global uchar *result_mix,
	__local uint *cache,
	uint nonces_per_thread)
{
	const uint lid = get_local_id(0);
	const uint lsize = get_local_size(0);

	// Cooperative, coalesced preload of the 16 KiB hot cache; every
	// thread of the block participates regardless of whether it will
	// itself find a hit.
	for (uint i = lid; i < CACHE_WORDS; i += lsize) {
		__global const uint *dagWords = (__global const uint *)dag;
		cache[i] = dagWords[i];
	}
	barrier(CLK_LOCAL_MEM_FENCE);

	if (header_len != 32) {
		return;
	}

	const uint dagItems = (uint)(dag_size / 64UL);
	const ulong gid = get_global_id(0);

	uint headerWords[8];
	for (int i = 0; i < 8; i++) {
		headerWords[i] = ((__global const uint *)header)[i];
	}

	uint targetWords[8];
	for (int i = 0; i < 8; i++) {
		targetWords[i] = ((__global const uint *)target)[i];
	}

	for (uint k = 0; k < nonces_per_thread; k++) {
		if (*result_nonce != 0UL) {
			return;
		}

		const ulong nonce = start_nonce + gid * (ulong)nonces_per_thread + (ulong)k;

		uint state[25];
		for (int i = 0; i < 8; i++) {
			state[i] = headerWords[i];
		}
		state[8] = (uint)nonce;
		state[9] = (uint)(nonce >> 32);
		for (int i = 10; i < 25; i++) {
			state[i] = 0;
		}
		keccak_f800(state);
		const ulong seed = ((ulong)state[0] << 32) | (ulong)state[1];

		uint laneMixes[LANES][REGS];
		for (int l = 0; l < LANES; l++) {
			kiss99_t rng;
			kiss99_init(&rng, seed, (uint)l);
			for (int r = 0; r < REGS; r++) {
				laneMixes[l][r] = kiss99_next(&rng);
			}
		}

		for (uint loopIdx = 0; loopIdx < 64U; loopIdx++) {
			uint mix[LANES];
			for (int l = 0; l < LANES; l++) {
				uint folded = FNV_OFFSET_BASIS;
				for (int r = 0; r < REGS; r++) {
					folded = fnv1a(folded, laneMixes[l][r]);
				}
				mix[l] = folded;
			}

			kiss99_t rng;
			kiss99_init(&rng, seed, loopIdx);

			for (uint c = 0; c < CNT_CACHE; c++) {
				uint lane = kiss99_next(&rng) % LANES;
				uint cacheIdx = mix[lane] % CACHE_WORDS;
				uint cacheVal = cache[cacheIdx];
				mix[lane] = random_merge(mix[lane], cacheVal, kiss99_next(&rng));
			}

			for (uint m = 0; m < CNT_MATH; m++) {
				uint src1 = kiss99_next(&rng) % LANES;
				uint src2 = kiss99_next(&rng) % LANES;
				uint dst = kiss99_next(&rng) % LANES;
				uint r = random_math(mix[src1], mix[src2], kiss99_next(&rng));
				mix[dst] = random_merge(mix[dst], r, kiss99_next(&rng));
			}

			for (uint i = 0; i < CNT_DAG; i++) {
				uint lane = i % LANES;
				ulong itemIndex = (ulong)fnv1a(loopIdx, mix[lane]) % (ulong)dagItems;
				__global const uint *item = (__global const uint *)(dag + itemIndex * 64UL);
				for (uint wk = 0; wk < 16U; wk++) {
					uint dstLane = (lane + wk) % LANES;
					mix[dstLane] = random_merge(mix[dstLane], item[wk], kiss99_next(&rng));
				}
			}

			for (int l = 0; l < LANES; l++) {
				for (int r = 0; r < REGS; r++) {
					laneMixes[l][r] = fnv1a(laneMixes[l][r], mix[l]);
				}
			}
		}

		uint finalMix[8];
		for (int i = 0; i < 8; i++) {
			finalMix[i] = FNV_OFFSET_BASIS;
		}
		for (int l = 0; l < LANES; l++) {
			finalMix[l % 8] = fnv1a(finalMix[l % 8], laneMixes[l][0]);
		}

		uint finalState[25];
		for (int i = 0; i < 8; i++) {
			finalState[i] = finalMix[i];
		}
		for (int i = 0; i < 8; i++) {
			finalState[8 + i] = state[i];
		}
		for (int i = 16; i < 25; i++) {
			finalState[i] = 0;
		}
		keccak_f800(finalState);

		bool hit = false;
		for (int i = 7; i >= 0; i--) {
			if (finalState[i] < targetWords[i]) {
				hit = true;
				break;
			}
			if (finalState[i] > targetWords[i]) {
				hit = false;
				break;
			}
			if (i == 0) {
				hit = true;
			}
		}

		if (hit) {
			ulong expected = 0UL;
			if (atom_cmpxchg(result_nonce, expected, nonce) == 0UL) {
				__global uint *hashWords = (__global uint *)result_hash;
				__global uint *mixWords = (__global uint *)result_mix;
				for (int i = 0; i < 8; i++) {
					hashWords[i] = finalState[i];
					mixWords[i] = finalMix[i];
				}
			}
			return;
		}
	}
}
`
