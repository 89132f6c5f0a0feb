package mining

import (
	"github.com/holiman/uint256"

	"github.com/qrypu-project/qrypu/common"
)

// TargetSize is the default width of an unpacked challenge target.
const TargetSize = 32

// CompactToTarget expands a packed 4-byte target (Bitcoin style "bits")
// into an n-byte big-endian threshold. The top byte of packed is the size,
// the low 24 bits the mantissa, placed so that the mantissa's leading byte
// lands size bytes from the end. n <= 0 selects TargetSize.
func CompactToTarget(packed uint32, n int) []byte {
	if n <= 0 {
		n = TargetSize
	}
	size := int(packed >> 24)
	mantissa := uint64(packed & 0xffffff)

	if n == TargetSize && size <= TargetSize {
		// Common case on the 256-bit path.
		t := uint256.NewInt(mantissa)
		if size >= 3 {
			t.Lsh(t, uint(8*(size-3)))
		} else {
			t.Rsh(t, uint(8*(3-size)))
		}
		b := t.Bytes32()
		return b[:]
	}

	out := make([]byte, n)
	m := []byte{byte(mantissa >> 16), byte(mantissa >> 8), byte(mantissa)}
	for i, v := range m {
		pos := n - size + i
		if pos >= 0 && pos < n {
			out[pos] = v
		}
	}
	return out
}

// CompactFromTarget packs an unpacked big-endian threshold back into its
// 4-byte compact form.
func CompactFromTarget(target []byte) uint32 {
	trimmed := common.TrimLeftZeroes(target)
	size := len(trimmed)
	var mantissa uint32
	for i := 0; i < 3; i++ {
		mantissa <<= 8
		if i < len(trimmed) {
			mantissa |= uint32(trimmed[i])
		}
	}
	return uint32(size)<<24 | mantissa
}

// TargetFromZeros builds the compact form of an n-byte target that requires
// z leading zero bits.
func TargetFromZeros(z, n int) uint32 {
	if n <= 0 {
		n = TargetSize
	}
	return uint32(n-z/8)<<24 | uint32(0xff>>(z%8))<<16 | 0xffff
}
