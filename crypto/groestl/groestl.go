// Package groestl implements the Grøstl hash function (final round SHA-3
// candidate, tweaked version) at 224, 256, 384 and 512 bit output widths.
//
// The 224/256 widths use the 512-bit state with 10 rounds, the 384/512
// widths the 1024-bit state with 14 rounds. All byte order is big-endian.
package groestl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/qrypu-project/qrypu/common"
)

// ErrSize is returned when configuring an unsupported output width.
var ErrSize = errors.New("groestl: unsupported digest size")

// AES S-box, built from the multiplicative inverse in GF(2^8) and the AES
// affine transform instead of a hand-typed table, plus a doubling table for
// MixBytes.
var (
	sbox [256]byte
	dbl  [256]byte
)

func init() {
	for x := 0; x < 256; x++ {
		dbl[x] = xtime(byte(x))
	}
	var exp, lg [256]byte
	p := byte(1)
	for i := 0; i < 255; i++ {
		exp[i] = p
		lg[p] = byte(i)
		p ^= xtime(p) // multiply by the generator 0x03
	}
	for x := 1; x < 256; x++ {
		inv := exp[(255-int(lg[x]))%255]
		sbox[x] = affine(inv)
	}
	sbox[0] = affine(0)
}

func xtime(x byte) byte {
	v := x << 1
	if x&0x80 != 0 {
		v ^= 0x1b
	}
	return v
}

func affine(x byte) byte {
	rotl := func(b byte, n uint) byte { return b<<n | b>>(8-n) }
	return x ^ rotl(x, 1) ^ rotl(x, 2) ^ rotl(x, 3) ^ rotl(x, 4) ^ 0x63
}

// ShiftBytes offsets, tweaked variant.
var (
	shiftP512  = [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	shiftQ512  = [8]int{1, 3, 5, 7, 0, 2, 4, 6}
	shiftP1024 = [8]int{0, 1, 2, 3, 4, 5, 6, 11}
	shiftQ1024 = [8]int{1, 3, 5, 11, 0, 2, 4, 6}
)

// MixBytes circulant row: B = circ(02, 02, 03, 04, 05, 03, 05, 07).
var mixRow = [8]byte{2, 2, 3, 4, 5, 3, 5, 7}

// Digest is a Grøstl hash instance at a configured output width.
type Digest struct {
	bits      int
	blockSize int // 64 or 128 bytes, equal to the state size
	rounds    int
}

// New returns a digest configured for the given output width.
func New(bits int) (*Digest, error) {
	d := new(Digest)
	if err := d.Configure(bits); err != nil {
		return nil, err
	}
	return d, nil
}

// Configure sets the output width to one of 224, 256, 384 or 512 bits.
func (d *Digest) Configure(bits int) error {
	switch bits {
	case 224, 256:
		d.bits, d.blockSize, d.rounds = bits, 64, 10
	case 384, 512:
		d.bits, d.blockSize, d.rounds = bits, 128, 14
	default:
		return fmt.Errorf("%w: %w: %d", common.ErrInvalidConfig, ErrSize, bits)
	}
	return nil
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return d.bits / 8 }

// Compute consumes src to EOF and returns the digest.
func (d *Digest) Compute(src io.Reader) ([]byte, error) {
	blk := d.blockSize

	// IV: zero state with the output width in bits big-endian at the tail.
	h := make([]byte, blk)
	binary.BigEndian.PutUint64(h[blk-8:], uint64(d.bits))

	buf := make([]byte, blk)
	var blocks uint64
	var n int
	for {
		m, err := io.ReadFull(src, buf)
		if err == nil {
			d.compress(h, buf)
			blocks++
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			n = m
			break
		}
		return nil, fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	// Padding: 0x80, zero fill, 64-bit big-endian total block count.
	pad := make([]byte, blk)
	copy(pad, buf[:n])
	pad[n] = 0x80
	if n+9 > blk {
		blocks += 2
		d.compress(h, pad)
		pad = make([]byte, blk)
	} else {
		blocks++
	}
	binary.BigEndian.PutUint64(pad[blk-8:], blocks)
	d.compress(h, pad)

	// Output transform: h ^= P(h), truncated to the trailing bytes.
	p := append([]byte(nil), h...)
	d.perm(p, false)
	for i := range h {
		h[i] ^= p[i]
	}
	return h[blk-d.bits/8:], nil
}

// compress applies f(h, m) = P(h XOR m) XOR Q(m) XOR h in place.
func (d *Digest) compress(h, m []byte) {
	blk := d.blockSize
	p := make([]byte, blk)
	q := make([]byte, blk)
	for i := 0; i < blk; i++ {
		p[i] = h[i] ^ m[i]
		q[i] = m[i]
	}
	d.perm(p, false)
	d.perm(q, true)
	for i := 0; i < blk; i++ {
		h[i] ^= p[i] ^ q[i]
	}
}

// perm runs the P or Q permutation over a state given in byte-sequence
// form. The matrix view maps byte j*8+i to row i, column j.
func (d *Digest) perm(state []byte, q bool) {
	cols := d.blockSize / 8
	var shift *[8]int
	switch {
	case q && cols == 8:
		shift = &shiftQ512
	case q:
		shift = &shiftQ1024
	case cols == 8:
		shift = &shiftP512
	default:
		shift = &shiftP1024
	}

	tmp := make([]byte, d.blockSize)
	for r := 0; r < d.rounds; r++ {
		// AddRoundConstant
		if q {
			for i := range state {
				state[i] ^= 0xff
			}
			for j := 0; j < cols; j++ {
				state[j*8+7] ^= byte(j<<4) ^ byte(r)
			}
		} else {
			for j := 0; j < cols; j++ {
				state[j*8] ^= byte(j<<4) ^ byte(r)
			}
		}
		// SubBytes
		for i := range state {
			state[i] = sbox[state[i]]
		}
		// ShiftBytes
		for i := 0; i < 8; i++ {
			for j := 0; j < cols; j++ {
				tmp[j*8+i] = state[((j+shift[i])%cols)*8+i]
			}
		}
		// MixBytes
		for j := 0; j < cols; j++ {
			col := state[j*8 : j*8+8]
			src := tmp[j*8 : j*8+8]
			for i := 0; i < 8; i++ {
				var acc byte
				for k := 0; k < 8; k++ {
					acc ^= gfMul(mixRow[(k-i+8)%8], src[k])
				}
				col[i] = acc
			}
		}
	}
}

// gfMul multiplies over GF(2^8) with the AES polynomial; only the factors
// appearing in the MixBytes matrix are handled.
func gfMul(b, x byte) byte {
	switch b {
	case 2:
		return dbl[x]
	case 3:
		return dbl[x] ^ x
	case 4:
		return dbl[dbl[x]]
	case 5:
		return dbl[dbl[x]] ^ x
	case 7:
		return dbl[dbl[x]] ^ dbl[x] ^ x
	}
	return 0
}
