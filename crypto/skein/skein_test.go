package skein

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Vectors from the Skein 1.3 specification appendix.
var vectors = []struct {
	bits int
	in   []byte
	out  string
}{
	{256, nil, "c8877087da56e072870daa843f176e9453115929094c3a40c463a196c29bf7ba"},
	{512, nil, "bc5b4c50925519c290cc634277ae3d6257212395cba733bbad37a4af0fa06af4" +
		"1fca7903d06564fea7a2d3730dbdb80c1f85562dfcc070334ea4d1d9e72cba7a"},
	{256, []byte{0xff}, "0b98dcd198ea0e50a7a244c444e25c23da30c10fc9a1f270a6637f1f34e67ed2"},
	{512, []byte{0xff}, "71b7bce6fe6452227b9ced6014249e5bf9a9754c3ad618ccc4e0aae16b316cc8" +
		"ca698d864307ed3e80b6ef1570812ac5272dc409b5a012df2a579102f340617a"},
}

func TestVectors(t *testing.T) {
	for i, vec := range vectors {
		d, err := New(vec.bits)
		if err != nil {
			t.Fatal(err)
		}
		sum, err := d.Compute(bytes.NewReader(vec.in))
		if err != nil {
			t.Fatal(err)
		}
		if have := hex.EncodeToString(sum); have != vec.out {
			t.Errorf("vector %d (skein-512-%d): have %s, want %s", i, vec.bits, have, vec.out)
		}
	}
}

func TestConfigIVsDiffer(t *testing.T) {
	ivs := map[[8]uint64]int{}
	for _, bits := range []int{224, 256, 384, 512} {
		d, err := New(bits)
		if err != nil {
			t.Fatal(err)
		}
		if prev, ok := ivs[d.iv]; ok {
			t.Fatalf("skein-%d shares its chain IV with skein-%d", bits, prev)
		}
		ivs[d.iv] = bits
	}
}

func TestConfigure(t *testing.T) {
	d, err := New(224)
	if err != nil {
		t.Fatal(err)
	}
	if d.Size() != 28 {
		t.Errorf("size: have %d, want 28", d.Size())
	}
	if err := d.Configure(512); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 64 {
		t.Errorf("size after reconfigure: have %d, want 64", d.Size())
	}
	if err := d.Configure(160); err == nil {
		t.Error("want error for 160 bit output")
	}
}

func TestLengths(t *testing.T) {
	for _, bits := range []int{224, 256, 384, 512} {
		d, _ := New(bits)
		for _, n := range []int{0, 1, 63, 64, 65, 127, 128, 129, 1000} {
			msg := bytes.Repeat([]byte{0xc4}, n)
			one, err := d.Compute(bytes.NewReader(msg))
			if err != nil {
				t.Fatal(err)
			}
			if len(one) != bits/8 {
				t.Fatalf("skein-512-%d of %d bytes: digest length %d", bits, n, len(one))
			}
			two, _ := d.Compute(bytes.NewReader(msg))
			if !bytes.Equal(one, two) {
				t.Fatalf("skein-512-%d of %d bytes not deterministic", bits, n)
			}
		}
	}
}
