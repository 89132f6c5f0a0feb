package qmhhuk

import "math/big"

// The QmhHuk constants are derived, not tabulated: the round constants are
// the fractional parts of the cube roots of the 64 primes in [419, 827],
// the initial values the fractional parts of their square roots (first
// eight primes for the 256/512 widths, the following eight for 224/384).
// Deriving them at init keeps the tables bit-exact without 120 lines of
// hex literals.

var primes = [64]int64{
	419, 421, 431, 433, 439, 443, 449, 457,
	461, 463, 467, 479, 487, 491, 499, 503,
	509, 521, 523, 541, 547, 557, 563, 569,
	571, 577, 587, 593, 599, 601, 607, 613,
	617, 619, 631, 641, 643, 647, 653, 659,
	661, 673, 677, 683, 691, 701, 709, 719,
	727, 733, 739, 743, 751, 757, 761, 769,
	773, 787, 797, 809, 811, 821, 823, 827,
}

var (
	k32 [56]uint32
	k64 [64]uint64

	iv224, iv256 [8]uint32
	iv384, iv512 [8]uint64
)

// piPad holds the first 128 fractional bytes of pi, the fill bytes for the
// first padding region.
var piPad = [128]byte{
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	0x13, 0x19, 0x8a, 0x2e, 0x03, 0x70, 0x73, 0x44,
	0xa4, 0x09, 0x38, 0x22, 0x29, 0x9f, 0x31, 0xd0,
	0x08, 0x2e, 0xfa, 0x98, 0xec, 0x4e, 0x6c, 0x89,
	0x45, 0x28, 0x21, 0xe6, 0x38, 0xd0, 0x13, 0x77,
	0xbe, 0x54, 0x66, 0xcf, 0x34, 0xe9, 0x0c, 0x6c,
	0xc0, 0xac, 0x29, 0xb7, 0xc9, 0x7c, 0x50, 0xdd,
	0x3f, 0x84, 0xd5, 0xb5, 0xb5, 0x47, 0x09, 0x17,
	0x92, 0x16, 0xd5, 0xd9, 0x89, 0x79, 0xfb, 0x1b,
	0xd1, 0x31, 0x0b, 0xa6, 0x98, 0xdf, 0xb5, 0xac,
	0x2f, 0xfd, 0x72, 0xdb, 0xd0, 0x1a, 0xdf, 0xb7,
	0xb8, 0xe1, 0xaf, 0xed, 0x6a, 0x26, 0x7e, 0x96,
	0xba, 0x7c, 0x90, 0x45, 0xf1, 0x2c, 0x7f, 0x99,
	0x24, 0xa1, 0x99, 0x47, 0xb3, 0x91, 0x6c, 0xf7,
	0x08, 0x01, 0xf2, 0xe2, 0x85, 0x8e, 0xfc, 0x16,
	0x63, 0x69, 0x20, 0xd8, 0x71, 0x57, 0x4e, 0x69,
}

// phiPad holds the first 128 fractional bytes of the golden ratio, the fill
// bytes for a second padding block; generated at init.
var phiPad [128]byte

func init() {
	for i := range k32 {
		k32[i] = uint32(fracRoot(primes[i], 3, 32))
	}
	for i := range k64 {
		k64[i] = fracRoot(primes[i], 3, 64)
	}
	for i := 0; i < 8; i++ {
		iv256[i] = uint32(fracRoot(primes[i], 2, 32))
		iv224[i] = uint32(fracRoot(primes[8+i], 2, 32))
		iv512[i] = fracRoot(primes[i], 2, 64)
		iv384[i] = fracRoot(primes[8+i], 2, 64)
	}
	goldenBytes(phiPad[:])
}

// fracRoot returns the first `outBits` bits of the fractional part of the
// root-th root of p.
func fracRoot(p int64, root int, outBits uint) uint64 {
	const prec = 80
	scaled := new(big.Int).Lsh(big.NewInt(p), uint(root)*prec)
	var r *big.Int
	if root == 2 {
		r = new(big.Int).Sqrt(scaled)
	} else {
		r = icbrt(scaled)
	}
	whole := new(big.Int).Rsh(new(big.Int).Set(r), prec)
	frac := new(big.Int).Sub(r, new(big.Int).Lsh(whole, prec))
	frac.Rsh(frac, prec-outBits)
	return frac.Uint64()
}

// icbrt returns the integer cube root floor(n^(1/3)) by Newton iteration.
func icbrt(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	three := big.NewInt(3)
	x := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/3+1))
	for {
		x2 := new(big.Int).Mul(x, x)
		next := new(big.Int).Div(n, x2)
		next.Add(next, new(big.Int).Lsh(x, 1))
		next.Div(next, three)
		if next.Cmp(x) >= 0 {
			break
		}
		x = next
	}
	// Settle exactly on floor.
	for cube(x).Cmp(n) > 0 {
		x.Sub(x, big.NewInt(1))
	}
	for {
		y := new(big.Int).Add(x, big.NewInt(1))
		if cube(y).Cmp(n) > 0 {
			break
		}
		x = y
	}
	return x
}

func cube(x *big.Int) *big.Int {
	return new(big.Int).Mul(x, new(big.Int).Mul(x, x))
}

// goldenBytes fills dst with fractional bytes of (1+sqrt(5))/2.
func goldenBytes(dst []byte) {
	prec := uint(len(dst)*8 + 16)
	s := new(big.Int).Sqrt(new(big.Int).Lsh(big.NewInt(5), 2*prec))
	// phi*2^prec = (2^prec + sqrt(5)*2^prec) / 2; drop the integer part 1.
	phi := new(big.Int).Add(s, new(big.Int).Lsh(big.NewInt(1), prec))
	phi.Rsh(phi, 1)
	frac := new(big.Int).Sub(phi, new(big.Int).Lsh(big.NewInt(1), prec))
	frac.Rsh(frac, 16)
	frac.FillBytes(dst)
}
