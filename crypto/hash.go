// Package crypto assembles the qrypu digest toolkit: the Hasher contract
// shared by all digest algorithms, the stable HashID registry, message
// sources and the Recipe pipeline that chains digests end to end.
package crypto

import (
	"fmt"
	"io"

	"github.com/qrypu-project/qrypu/common"
	"github.com/qrypu-project/qrypu/crypto/blake"
	"github.com/qrypu-project/qrypu/crypto/groestl"
	"github.com/qrypu-project/qrypu/crypto/jh"
	"github.com/qrypu-project/qrypu/crypto/qmhhuk"
	"github.com/qrypu-project/qrypu/crypto/skein"
)

var (
	// ErrInvalidConfig is returned for unsupported digest widths, empty
	// recipes and malformed search configurations.
	ErrInvalidConfig = common.ErrInvalidConfig

	// ErrIOFailure wraps unexpected read failures from a message source.
	// Every digest's Compute wraps non-EOF reader errors with it.
	ErrIOFailure = common.ErrIOFailure
)

// Hasher is the contract every digest algorithm implements. A configured
// instance may compute many independent digests sequentially; instances are
// not safe for concurrent Compute calls.
type Hasher interface {
	// Configure sets the output width in bits. It fails with an error
	// wrapping ErrInvalidConfig semantics when the algorithm does not
	// support the width.
	Configure(bits int) error

	// Size returns the configured output width in bytes.
	Size() int

	// Compute consumes src to EOF and returns the digest. The source
	// length is never assumed to be known. After an error the instance
	// stays reusable.
	Compute(src io.Reader) ([]byte, error)
}

// HashID identifies a digest algorithm at a fixed output width. The numeric
// ordering is stable and part of the external contract.
type HashID uint8

const (
	Sha1 HashID = iota
	Sha256
	Sha384
	Sha512
	Blake224
	Blake256
	Blake384
	Blake512
	Groestl224
	Groestl256
	Groestl384
	Groestl512
	Jh224
	Jh256
	Jh384
	Jh512
	Skein224
	Skein256
	Skein384
	Skein512
	QmhHuk224
	QmhHuk256
	QmhHuk384
	QmhHuk512
)

var hashIDNames = map[HashID]string{
	Sha1:       "sha1",
	Sha256:     "sha256",
	Sha384:     "sha384",
	Sha512:     "sha512",
	Blake224:   "blake224",
	Blake256:   "blake256",
	Blake384:   "blake384",
	Blake512:   "blake512",
	Groestl224: "groestl224",
	Groestl256: "groestl256",
	Groestl384: "groestl384",
	Groestl512: "groestl512",
	Jh224:      "jh224",
	Jh256:      "jh256",
	Jh384:      "jh384",
	Jh512:      "jh512",
	Skein224:   "skein224",
	Skein256:   "skein256",
	Skein384:   "skein384",
	Skein512:   "skein512",
	QmhHuk224:  "qmhhuk224",
	QmhHuk256:  "qmhhuk256",
	QmhHuk384:  "qmhhuk384",
	QmhHuk512:  "qmhhuk512",
}

var hashIDValues = func() map[string]HashID {
	m := make(map[string]HashID, len(hashIDNames))
	for id, name := range hashIDNames {
		m[name] = id
	}
	return m
}()

func (id HashID) String() string {
	if name, ok := hashIDNames[id]; ok {
		return name
	}
	return fmt.Sprintf("hash#%d", uint8(id))
}

// Bits returns the output width the identifier selects.
func (id HashID) Bits() int {
	switch id {
	case Sha1:
		return 160
	case Sha256, Blake256, Groestl256, Jh256, Skein256, QmhHuk256:
		return 256
	case Sha384, Blake384, Groestl384, Jh384, Skein384, QmhHuk384:
		return 384
	case Sha512, Blake512, Groestl512, Jh512, Skein512, QmhHuk512:
		return 512
	case Blake224, Groestl224, Jh224, Skein224, QmhHuk224:
		return 224
	}
	return 0
}

// ParseHashID resolves a textual identifier as produced by String.
func ParseHashID(name string) (HashID, error) {
	if id, ok := hashIDValues[name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: unknown hash id %q", ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (id HashID) MarshalText() ([]byte, error) {
	if _, ok := hashIDNames[id]; !ok {
		return nil, fmt.Errorf("%w: unknown hash id %d", ErrInvalidConfig, uint8(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *HashID) UnmarshalText(text []byte) error {
	parsed, err := ParseHashID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// New returns a freshly configured digest instance for the identifier.
func New(id HashID) (Hasher, error) {
	bits := id.Bits()
	var (
		h   Hasher
		err error
	)
	switch id {
	case Sha1, Sha256, Sha384, Sha512:
		h, err = newSHA(bits)
	case Blake224, Blake256, Blake384, Blake512:
		h, err = blake.New(bits)
	case Groestl224, Groestl256, Groestl384, Groestl512:
		h, err = groestl.New(bits)
	case Jh224, Jh256, Jh384, Jh512:
		h, err = jh.New(bits)
	case Skein224, Skein256, Skein384, Skein512:
		h, err = skein.New(bits)
	case QmhHuk224, QmhHuk256, QmhHuk384, QmhHuk512:
		h, err = qmhhuk.New(bits)
	default:
		return nil, fmt.Errorf("%w: unknown hash id %d", ErrInvalidConfig, uint8(id))
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}
