// Package jh implements the JH hash function (final round SHA-3 candidate,
// 42 rounds) at 224, 256, 384 and 512 bit output widths.
//
// The E8 permutation runs in the element-wise form of the specification:
// the 1024-bit state is grouped into 256 four-bit elements, each round
// applies the constant-selected S-box, the linear transform L over GF(2^4)
// and the permutation P8. The 42 round constants are generated from the
// published 256-bit seed with the zero-constant R6 round, the same way the
// specification defines them.
package jh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/qrypu-project/qrypu/common"
)

// ErrSize is returned when configuring an unsupported output width.
var ErrSize = errors.New("jh: unsupported digest size")

const (
	blockSize = 64
	stateSize = 128
	rounds    = 42
)

var sboxes = [2][16]byte{
	{9, 0, 4, 11, 13, 12, 3, 15, 1, 10, 2, 6, 7, 5, 8, 14},
	{3, 12, 6, 13, 5, 7, 1, 9, 15, 2, 0, 4, 11, 10, 14, 8},
}

// roundSeed is the published 256-bit constant the round constant chain
// starts from.
var roundSeed = [32]byte{
	0x6a, 0x09, 0xe6, 0x67, 0xf3, 0xbc, 0xc9, 0x08,
	0xb2, 0xfb, 0x13, 0x66, 0xea, 0x95, 0x7d, 0x3e,
	0x3a, 0xde, 0xc1, 0x75, 0x12, 0x77, 0x50, 0x99,
	0xda, 0x2f, 0x59, 0x0b, 0x06, 0x67, 0x32, 0x2a,
}

var (
	perm8     []int // P8 source-index table over 256 elements
	perm6     []int // P6 source-index table over 64 elements
	roundCons [rounds][32]byte
	ivs       map[int][stateSize]byte
)

func init() {
	perm8 = buildPerm(256)
	perm6 = buildPerm(64)

	c := roundSeed
	for r := 0; r < rounds; r++ {
		roundCons[r] = c
		c = nextConstant(c)
	}

	ivs = make(map[int][stateSize]byte, 4)
	for _, bits := range []int{224, 256, 384, 512} {
		var h [stateSize]byte
		binary.BigEndian.PutUint16(h[:2], uint16(bits))
		var zero [blockSize]byte
		f8(&h, zero[:])
		ivs[bits] = h
	}
}

// buildPerm composes pi, P' and phi into a single source-index table:
// out[k] = in[tab[k]].
func buildPerm(n int) []int {
	pi := make([]int, n)
	for i := 0; i < n; i += 4 {
		pi[i], pi[i+1], pi[i+2], pi[i+3] = i, i+1, i+3, i+2
	}
	pp := make([]int, n)
	for i := 0; i < n/2; i++ {
		pp[i] = 2 * i
		pp[i+n/2] = 2*i + 1
	}
	phi := make([]int, n)
	for i := 0; i < n/2; i++ {
		phi[i] = i
	}
	for i := n / 2; i < n; i += 2 {
		phi[i], phi[i+1] = i+1, i
	}
	tab := make([]int, n)
	for k := 0; k < n; k++ {
		tab[k] = pi[pp[phi[k]]]
	}
	return tab
}

// mul2 doubles over GF(2^4) with polynomial x^4 + x + 1.
func mul2(v byte) byte {
	d := (v << 1) & 0x0f
	if v&0x08 != 0 {
		d ^= 0x03
	}
	return d
}

func getBit(b []byte, i int) byte {
	return (b[i>>3] >> (7 - uint(i&7))) & 1
}

// group packs a bit string into 4-bit elements: element i takes bits
// (2i, 2i+1) of the first half as its high bits and bits (2i, 2i+1) of the
// second half as its low bits.
func group(b []byte) []byte {
	n := len(b) * 2
	half := len(b) * 4
	e := make([]byte, n)
	for i := 0; i < n; i++ {
		e[i] = getBit(b, 2*i)<<3 | getBit(b, 2*i+1)<<2 |
			getBit(b, half+2*i)<<1 | getBit(b, half+2*i+1)
	}
	return e
}

func degroup(e []byte, b []byte) {
	for i := range b {
		b[i] = 0
	}
	half := len(b) * 4
	setBit := func(i int, v byte) {
		if v != 0 {
			b[i>>3] |= 1 << (7 - uint(i&7))
		}
	}
	for i, v := range e {
		setBit(2*i, v>>3&1)
		setBit(2*i+1, v>>2&1)
		setBit(half+2*i, v>>1&1)
		setBit(half+2*i+1, v&1)
	}
}

// roundE applies one round (S-box layer, L layer, permutation) to grouped
// elements. cons selects the S-box per element; nil means S0 throughout.
func roundE(e []byte, perm []int, cons []byte) []byte {
	for i := range e {
		sel := byte(0)
		if cons != nil {
			sel = getBit(cons, i)
		}
		e[i] = sboxes[sel][e[i]]
	}
	for i := 0; i < len(e); i += 2 {
		a, b := e[i], e[i+1]
		b ^= mul2(a)
		a ^= mul2(b)
		e[i], e[i+1] = a, b
	}
	out := make([]byte, len(e))
	for k := range out {
		out[k] = e[perm[k]]
	}
	return out
}

// nextConstant advances the round constant chain with the zero-constant R6
// round.
func nextConstant(c [32]byte) [32]byte {
	e := group(c[:])
	e = roundE(e, perm6, nil)
	var out [32]byte
	degroup(e, out[:])
	return out
}

// e8 runs the 42-round E8 permutation over the 1024-bit state.
func e8(h *[stateSize]byte) {
	e := group(h[:])
	for r := 0; r < rounds; r++ {
		e = roundE(e, perm8, roundCons[r][:])
	}
	degroup(e, h[:])
}

// f8 is the compression function: the message block is XORed into the first
// half of the state before E8 and into the second half after.
func f8(h *[stateSize]byte, m []byte) {
	for i := 0; i < blockSize; i++ {
		h[i] ^= m[i]
	}
	e8(h)
	for i := 0; i < blockSize; i++ {
		h[blockSize+i] ^= m[i]
	}
}

// Digest is a JH hash instance at a configured output width.
type Digest struct {
	bits int
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
	case 224, 256, 384, 512:
		d.bits = bits
		return nil
	}
	return fmt.Errorf("%w: %w: %d", common.ErrInvalidConfig, ErrSize, bits)
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return d.bits / 8 }

// Compute consumes src to EOF and returns the digest.
func (d *Digest) Compute(src io.Reader) ([]byte, error) {
	h := ivs[d.bits]

	var (
		buf    [blockSize]byte
		length uint64
		n      int
	)
	for {
		m, err := io.ReadFull(src, buf[:])
		if err == nil {
			f8(&h, buf[:])
			length += blockSize
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			n = m
			break
		}
		return nil, fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}
	msgBits := (length + uint64(n)) * 8

	// At least 512 bits of padding: the bit-length field always sits in a
	// block that carries no message bytes.
	var block [blockSize]byte
	if n > 0 {
		copy(block[:], buf[:n])
		block[n] = 0x80
		f8(&h, block[:])
		block = [blockSize]byte{}
	} else {
		block[0] = 0x80
	}
	binary.BigEndian.PutUint64(block[blockSize-8:], msgBits)
	f8(&h, block[:])

	return h[stateSize-d.bits/8:], nil
}
