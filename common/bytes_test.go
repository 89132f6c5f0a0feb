package common

import (
	"bytes"
	"testing"
)

func TestCopyBytes(t *testing.T) {
	input := []byte{1, 2, 3, 4}
	v := CopyBytes(input)
	if !bytes.Equal(v, input) {
		t.Fatalf("have %x, want %x", v, input)
	}
	v[0] = 99
	if input[0] != 1 {
		t.Fatal("copy aliases the input")
	}
	if CopyBytes(nil) != nil {
		t.Fatal("copy of nil is not nil")
	}
}

func TestLeftPadBytes(t *testing.T) {
	val := []byte{1, 2, 3, 4}
	padded := []byte{0, 0, 0, 0, 1, 2, 3, 4}

	if have := LeftPadBytes(val, 8); !bytes.Equal(have, padded) {
		t.Errorf("have %x, want %x", have, padded)
	}
	if have := LeftPadBytes(val, 2); !bytes.Equal(have, val) {
		t.Errorf("have %x, want %x", have, val)
	}
}

func TestTrimLeftZeroes(t *testing.T) {
	tests := []struct {
		arr []byte
		exp []byte
	}{
		{[]byte{0, 0, 0, 1}, []byte{1}},
		{[]byte{0, 0, 0, 1, 0}, []byte{1, 0}},
		{[]byte{0, 0, 0, 0}, []byte{}},
		{[]byte{0xff}, []byte{0xff}},
		{nil, nil},
	}
	for i, test := range tests {
		if have := TrimLeftZeroes(test.arr); !bytes.Equal(have, test.exp) {
			t.Errorf("test %d: have %x, want %x", i, have, test.exp)
		}
	}
}

func TestConcatBytes(t *testing.T) {
	have := ConcatBytes([]byte{1, 2}, nil, []byte{3})
	if !bytes.Equal(have, []byte{1, 2, 3}) {
		t.Errorf("have %x, want 010203", have)
	}
}
