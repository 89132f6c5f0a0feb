package crypto

import (
	"crypto/sha1"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	sha256 "github.com/minio/sha256-simd"
)

// shaDigest is the SHA family digest. The heavy lifting is delegated to
// vetted implementations: SHA-256 to the SIMD-accelerated minio package,
// SHA-1/384/512 to the platform library. Width 160 selects SHA-1.
type shaDigest struct {
	bits int
}

func newSHA(bits int) (*shaDigest, error) {
	d := new(shaDigest)
	if err := d.Configure(bits); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *shaDigest) Configure(bits int) error {
	switch bits {
	case 160, 256, 384, 512:
		d.bits = bits
		return nil
	}
	return fmt.Errorf("%w: sha does not support %d bit output", ErrInvalidConfig, bits)
}

func (d *shaDigest) Size() int { return d.bits / 8 }

func (d *shaDigest) Compute(src io.Reader) ([]byte, error) {
	var h hash.Hash
	switch d.bits {
	case 160:
		h = sha1.New()
	case 256:
		h = sha256.New()
	case 384:
		h = sha512.New384()
	case 512:
		h = sha512.New()
	default:
		return nil, fmt.Errorf("%w: sha digest not configured", ErrInvalidConfig)
	}
	if _, err := io.Copy(h, src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return h.Sum(nil), nil
}
