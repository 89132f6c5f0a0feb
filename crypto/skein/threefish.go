package skein

import "math/bits"

// Threefish-512 block cipher, the permutation under Skein's UBI chaining.

const keyScheduleParity = 0x1bd11bdaa9fc1a22

// Rotation constants, Threefish v1.3.
var rot = [8][4]int{
	{46, 36, 19, 37},
	{33, 27, 14, 42},
	{17, 49, 36, 39},
	{44, 9, 54, 56},
	{39, 30, 34, 24},
	{13, 50, 10, 17},
	{25, 29, 39, 43},
	{8, 35, 56, 22},
}

// Word permutation applied after each MIX layer.
var wordPerm = [8]int{2, 1, 4, 7, 6, 5, 0, 3}

// encrypt512 runs the 72-round Threefish-512 encryption of block under the
// given key and tweak, returning the ciphertext words.
func encrypt512(key *[8]uint64, tweak *[2]uint64, block *[8]uint64) [8]uint64 {
	var ks [9]uint64
	ks[8] = keyScheduleParity
	for i, k := range key {
		ks[i] = k
		ks[8] ^= k
	}
	ts := [3]uint64{tweak[0], tweak[1], tweak[0] ^ tweak[1]}

	v := *block
	for d := 0; d < 72; d++ {
		if d%4 == 0 {
			s := d / 4
			for i := 0; i < 8; i++ {
				v[i] += ks[(s+i)%9]
			}
			v[5] += ts[s%3]
			v[6] += ts[(s+1)%3]
			v[7] += uint64(s)
		}
		r := &rot[d%8]
		for j := 0; j < 4; j++ {
			x0, x1 := v[2*j], v[2*j+1]
			x0 += x1
			x1 = bits.RotateLeft64(x1, r[j]) ^ x0
			v[2*j], v[2*j+1] = x0, x1
		}
		var w [8]uint64
		for i := 0; i < 8; i++ {
			w[i] = v[wordPerm[i]]
		}
		v = w
	}
	// Final subkey injection after the last round.
	for i := 0; i < 8; i++ {
		v[i] += ks[(18+i)%9]
	}
	v[5] += ts[18%3]
	v[6] += ts[(18+1)%3]
	v[7] += 18
	return v
}
