// Package skein implements the Skein-512 hash function (final round SHA-3
// candidate, version 1.3) at 224, 256, 384 and 512 bit output widths.
//
// Only plain message hashing is provided; the MAC, KDF, tree and
// personalization modes of the Skein specification are not exposed. All
// words are little-endian per the specification.
package skein

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/qrypu-project/qrypu/common"
)

// ErrSize is returned when configuring an unsupported output width.
var ErrSize = errors.New("skein: unsupported digest size")

const blockSize = 64

// UBI block type values and tweak flag bits.
const (
	typeConfig  = 4
	typeMessage = 48
	typeOutput  = 63

	flagFirst = 1 << 62
	flagFinal = 1 << 63
)

// Digest is a Skein-512 hash instance at a configured output width. The
// chain value after the configuration block is cached per width.
type Digest struct {
	bits int
	iv   [8]uint64
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
	default:
		return fmt.Errorf("%w: %w: %d", common.ErrInvalidConfig, ErrSize, bits)
	}
	d.bits = bits
	d.iv = configIV(uint64(bits))
	return nil
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return d.bits / 8 }

// configIV derives the chain value from the configuration string: schema
// "SHA3", version 1, output size in bits.
func configIV(outBits uint64) [8]uint64 {
	var cfg [32]byte
	copy(cfg[:4], "SHA3")
	binary.LittleEndian.PutUint16(cfg[4:], 1)
	binary.LittleEndian.PutUint64(cfg[8:], outBits)

	var g [8]uint64
	ubiBlock(&g, cfg[:], 32, typeConfig, true, true)
	return g
}

// ubiBlock feeds one block (padded with zeros to 64 bytes) through UBI:
// G' = E(G, tweak, M) XOR M. position is the total bytes consumed so far,
// including this block's unpadded payload.
func ubiBlock(g *[8]uint64, block []byte, position uint64, typ uint64, first, final bool) {
	var padded [blockSize]byte
	copy(padded[:], block)

	var m [8]uint64
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(padded[i*8:])
	}
	tweak := [2]uint64{position, typ << 56}
	if first {
		tweak[1] |= flagFirst
	}
	if final {
		tweak[1] |= flagFinal
	}
	e := encrypt512(g, &tweak, &m)
	for i := range g {
		g[i] = e[i] ^ m[i]
	}
}

// Compute consumes src to EOF and returns the digest.
func (d *Digest) Compute(src io.Reader) ([]byte, error) {
	g := d.iv

	// Message UBI. The final flag can only be set once the next read
	// misses, so full blocks are held back one iteration.
	var (
		buf      [blockSize]byte
		pending  [blockSize]byte
		nPending int
		havePend bool
		position uint64
		first    = true
	)
	for {
		n, err := io.ReadFull(src, buf[:])
		if n > 0 {
			if havePend {
				position += uint64(nPending)
				ubiBlock(&g, pending[:nPending], position, typeMessage, first, false)
				first = false
			}
			pending, nPending, havePend = buf, n, true
		}
		if err == nil {
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		return nil, fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}
	if havePend {
		position += uint64(nPending)
		ubiBlock(&g, pending[:nPending], position, typeMessage, first, true)
	} else {
		// Empty message: a single all-zero block with position zero.
		ubiBlock(&g, nil, 0, typeMessage, true, true)
	}

	// Output transform: UBI over an 8-byte zero counter.
	var counter [8]byte
	ubiBlock(&g, counter[:], 8, typeOutput, true, true)

	out := make([]byte, blockSize)
	for i, w := range g {
		binary.LittleEndian.PutUint64(out[i*8:], w)
	}
	return out[:d.bits/8], nil
}
