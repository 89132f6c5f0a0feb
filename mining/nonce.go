package mining

import (
	"fmt"

	"github.com/qrypu-project/qrypu/common"
	"github.com/qrypu-project/qrypu/crypto"
)

// NoncePosition says where the nonce region sits inside the message bytes.
type NoncePosition uint8

const (
	// Head places the nonce over the first bytes of the message.
	Head NoncePosition = iota

	// Tail places the nonce over the last bytes of the message.
	Tail
)

func (p NoncePosition) String() string {
	switch p {
	case Head:
		return "head"
	case Tail:
		return "tail"
	}
	return fmt.Sprintf("position#%d", uint8(p))
}

// ParseNoncePosition resolves a textual position as produced by String.
func ParseNoncePosition(name string) (NoncePosition, error) {
	switch name {
	case "head":
		return Head, nil
	case "tail":
		return Tail, nil
	}
	return 0, fmt.Errorf("%w: unknown nonce position %q", crypto.ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p NoncePosition) MarshalText() ([]byte, error) {
	switch p {
	case Head, Tail:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("%w: unknown nonce position %d", crypto.ErrInvalidConfig, uint8(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NoncePosition) UnmarshalText(text []byte) error {
	parsed, err := ParseNoncePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// nonceOffset returns the region start for a position.
func nonceOffset(dataLen, nonceLen int, pos NoncePosition) int {
	if pos == Tail {
		return dataLen - nonceLen
	}
	return 0
}

// spliceNonce overwrites the nonce region of data in place.
func spliceNonce(data, nonce []byte, pos NoncePosition) int {
	off := nonceOffset(len(data), len(nonce), pos)
	copy(data[off:off+len(nonce)], nonce)
	return off
}

// extractNonce copies the nonce region out of data.
func extractNonce(data []byte, off, length int) []byte {
	return common.CopyBytes(data[off : off+length])
}

// incrementNonce adds one to the nonce region, treated as a little-endian
// integer in byte units: the byte at off is least significant and carries
// propagate toward off+length-1. It reports whether the region wrapped back
// to all zeros.
func incrementNonce(data []byte, off, length int) (wrapped bool) {
	for i := off; i < off+length; i++ {
		data[i]++
		if data[i] != 0 {
			return false
		}
	}
	return true
}
