package varint

import (
	"bufio"
	"bytes"
	"math"
	"testing"
)

func TestVarIntExamples(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{25565, []byte{0xdd, 0xc7, 0x01}},
		{2097151, []byte{0xff, 0xff, 0x7f}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, c := range cases {
		got := AppendVarInt(nil, c.v)
		if !bytes.Equal(got, c.want) {
			t.Errorf("AppendVarInt(%d) = % x, want % x", c.v, got, c.want)
		}
		if s := SizeOfVarInt(c.v); s != len(c.want) {
			t.Errorf("SizeOfVarInt(%d) = %d, want %d", c.v, s, len(c.want))
		}
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	samples := []int32{math.MinInt32, math.MinInt32 + 1, -1000000, -1, 0, 1, 1000000, math.MaxInt32 - 1, math.MaxInt32}
	for _, v := range samples {
		buf := AppendVarInt(nil, v)
		if len(buf) != SizeOfVarInt(v) {
			t.Fatalf("size mismatch for %d: wrote %d bytes, SizeOfVarInt says %d", v, len(buf), SizeOfVarInt(v))
		}
		got, n, err := ReadVarInt(bufio.NewReader(bytes.NewReader(buf)))
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v || n != len(buf) {
			t.Errorf("round trip %d: got (%d, %d), want (%d, %d)", v, got, n, v, len(buf))
		}
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	samples := []int64{math.MinInt64, -1, 0, 1, math.MaxInt64}
	for _, v := range samples {
		buf := AppendVarLong(nil, v)
		if len(buf) != SizeOfVarLong(v) {
			t.Fatalf("size mismatch for %d", v)
		}
		got, n, err := ReadVarLong(bufio.NewReader(bytes.NewReader(buf)))
		if err != nil {
			t.Fatalf("ReadVarLong(%d): %v", v, err)
		}
		if got != v || n != len(buf) {
			t.Errorf("round trip %d: got (%d, %d), want (%d, %d)", v, got, n, v, len(buf))
		}
	}
}

func TestReadVarIntOverflow(t *testing.T) {
	// Six continuation bytes, never terminating; the reader gives up after
	// the fifth.
	buf := bytes.Repeat([]byte{0xff}, 6)
	_, _, err := ReadVarInt(bufio.NewReader(bytes.NewReader(buf)))
	if err != ErrOverflow {
		t.Errorf("ReadVarInt overlong input: got err %v, want ErrOverflow", err)
	}
}

func TestReadVarLongOverflow(t *testing.T) {
	buf := bytes.Repeat([]byte{0xff}, 11)
	_, _, err := ReadVarLong(bufio.NewReader(bytes.NewReader(buf)))
	if err != ErrOverflow {
		t.Errorf("ReadVarLong overlong input: got err %v, want ErrOverflow", err)
	}
}
