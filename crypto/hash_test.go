package crypto

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var allIDs = []HashID{
	Sha1, Sha256, Sha384, Sha512,
	Blake224, Blake256, Blake384, Blake512,
	Groestl224, Groestl256, Groestl384, Groestl512,
	Jh224, Jh256, Jh384, Jh512,
	Skein224, Skein256, Skein384, Skein512,
	QmhHuk224, QmhHuk256, QmhHuk384, QmhHuk512,
}

func TestHashIDOrdering(t *testing.T) {
	// The numeric ordering is a stable external contract.
	require.EqualValues(t, 0, Sha1)
	require.EqualValues(t, 3, Sha512)
	require.EqualValues(t, 4, Blake224)
	require.EqualValues(t, 8, Groestl224)
	require.EqualValues(t, 12, Jh224)
	require.EqualValues(t, 16, Skein224)
	require.EqualValues(t, 20, QmhHuk224)
	require.EqualValues(t, 23, QmhHuk512)
}

func TestHashIDRoundTrip(t *testing.T) {
	for _, id := range allIDs {
		parsed, err := ParseHashID(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)

		blob, err := json.Marshal(id)
		require.NoError(t, err)
		var back HashID
		require.NoError(t, json.Unmarshal(blob, &back))
		require.Equal(t, id, back)
	}
	_, err := ParseHashID("whirlpool")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewAllIDs(t *testing.T) {
	for _, id := range allIDs {
		h, err := New(id)
		require.NoError(t, err, "id %v", id)
		require.Equal(t, id.Bits()/8, h.Size(), "id %v", id)

		digest, err := h.Compute(NewBufferSource([]byte("abc")))
		require.NoError(t, err, "id %v", id)
		require.Len(t, digest, h.Size(), "id %v", id)

		again, err := h.Compute(NewBufferSource([]byte("abc")))
		require.NoError(t, err)
		require.Equal(t, digest, again, "id %v not deterministic", id)
	}
	_, err := New(HashID(200))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestShaVectors(t *testing.T) {
	tests := []struct {
		id  HashID
		in  string
		out string
	}{
		{Sha1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{Sha256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{Sha256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{Sha384, "abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed" +
			"8086072ba1e7cc2358baeca134c825a7"},
		{Sha512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, test := range tests {
		h, err := New(test.id)
		require.NoError(t, err)
		digest, err := h.Compute(NewBufferSource([]byte(test.in)))
		require.NoError(t, err)
		require.Equal(t, test.out, hex.EncodeToString(digest), "%v(%q)", test.id, test.in)
	}
}

func TestShaConfigure(t *testing.T) {
	h, err := newSHA(256)
	require.NoError(t, err)
	require.NoError(t, h.Configure(160))
	require.Equal(t, 20, h.Size())
	require.ErrorIs(t, h.Configure(224), ErrInvalidConfig)
	// A failed reconfiguration leaves the instance usable.
	require.Equal(t, 20, h.Size())
}
