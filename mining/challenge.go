package mining

import (
	"bytes"
	"fmt"

	"github.com/qrypu-project/qrypu/crypto"
)

// ChallengeKind selects the predicate that decides when a digest satisfies
// the search target.
type ChallengeKind uint8

const (
	// LessOrEqual holds when the digest, read as a big-endian magnitude,
	// is at most the target. Digest and target must be the same length.
	LessOrEqual ChallengeKind = iota

	// StartsWith holds when the digest begins with the target bytes.
	StartsWith
)

// ChallengeFunc reports whether digest satisfies target.
type ChallengeFunc func(digest, target []byte) bool

func (k ChallengeKind) String() string {
	switch k {
	case LessOrEqual:
		return "lessOrEqual"
	case StartsWith:
		return "startsWith"
	}
	return fmt.Sprintf("challenge#%d", uint8(k))
}

// ParseChallengeKind resolves a textual kind as produced by String.
func ParseChallengeKind(name string) (ChallengeKind, error) {
	switch name {
	case "lessOrEqual":
		return LessOrEqual, nil
	case "startsWith":
		return StartsWith, nil
	}
	return 0, fmt.Errorf("%w: unknown challenge kind %q", crypto.ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k ChallengeKind) MarshalText() ([]byte, error) {
	switch k {
	case LessOrEqual, StartsWith:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("%w: unknown challenge kind %d", crypto.ErrInvalidConfig, uint8(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ChallengeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseChallengeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Func returns the predicate for the kind.
func (k ChallengeKind) Func() (ChallengeFunc, error) {
	switch k {
	case LessOrEqual:
		return ChallengeLessOrEqual, nil
	case StartsWith:
		return ChallengeStartsWith, nil
	}
	return nil, fmt.Errorf("%w: unknown challenge kind %d", crypto.ErrInvalidConfig, uint8(k))
}

// ChallengeLessOrEqual compares digest against target as equal-length
// big-endian magnitudes.
func ChallengeLessOrEqual(digest, target []byte) bool {
	if len(digest) != len(target) {
		return false
	}
	return bytes.Compare(digest, target) <= 0
}

// ChallengeStartsWith requires the digest to begin with the target bytes.
func ChallengeStartsWith(digest, target []byte) bool {
	if len(digest) < len(target) {
		return false
	}
	return bytes.Equal(digest[:len(target)], target)
}
