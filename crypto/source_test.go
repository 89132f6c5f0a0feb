package crypto

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferSource(t *testing.T) {
	src := NewBufferSource([]byte("abcdef"))

	length, known := src.Length()
	require.True(t, known)
	require.Equal(t, uint64(6), length)

	buf := make([]byte, 4)
	n, err := src.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("abcd"), buf)

	n, err = src.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte("ef"), buf[:n])

	_, err = src.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestBufferSourceEmpty(t *testing.T) {
	src := NewBufferSource(nil)
	_, err := src.Read(make([]byte, 1))
	require.ErrorIs(t, err, io.EOF)
}

func TestStreamSource(t *testing.T) {
	src := NewStreamSource(strings.NewReader("hello"))
	_, known := src.Length()
	require.False(t, known)

	out, err := io.ReadAll(src)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), out)
}

func TestStreamSourceLen(t *testing.T) {
	src := NewStreamSourceLen(bytes.NewReader(make([]byte, 100)), 100)
	length, known := src.Length()
	require.True(t, known)
	require.Equal(t, uint64(100), length)
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("disk fault") }

func TestComputeReadFailure(t *testing.T) {
	// Every digest family reports a reader failure as ErrIOFailure.
	for _, id := range []HashID{Sha256, Blake256, Groestl256, Jh256, Skein256, QmhHuk256} {
		h, err := New(id)
		require.NoError(t, err)
		_, err = h.Compute(NewStreamSource(failReader{}))
		require.ErrorIs(t, err, ErrIOFailure, "id %v", id)

		// The instance stays usable after a failed computation.
		out, err := h.Compute(NewBufferSource([]byte("ok")))
		require.NoError(t, err)
		require.Len(t, out, h.Size(), "id %v", id)
	}

	// And the sentinel survives the recipe's stage-context wrapping.
	r, err := NewRecipe(Blake256)
	require.NoError(t, err)
	_, err = r.ComputeSource(NewStreamSource(failReader{}))
	require.ErrorIs(t, err, ErrIOFailure)
}

// Digest outputs must not depend on the kind of source the message arrives
// through.
func TestSourceEquivalence(t *testing.T) {
	msg := bytes.Repeat([]byte("qrypu"), 100)
	for _, id := range []HashID{Sha256, Blake256, Groestl224, Jh384, Skein512, QmhHuk256} {
		h, err := New(id)
		require.NoError(t, err)

		fromBuf, err := h.Compute(NewBufferSource(msg))
		require.NoError(t, err)
		fromStream, err := h.Compute(NewStreamSource(bytes.NewReader(msg)))
		require.NoError(t, err)
		require.Equal(t, fromBuf, fromStream, "source mismatch for %v", id)
	}
}
