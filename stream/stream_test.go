package stream

import (
	"bytes"
	"testing"
)

func TestFramerSplitsPartialFrames(t *testing.T) {
	f := NewFramer()
	var out bytes.Buffer
	if err := WriteFrame(&out, []byte("hello")); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	whole := out.Bytes()

	f.Feed(whole[:2])
	if _, ok, err := f.Next(); ok || err != nil {
		t.Fatalf("expected no complete frame yet, ok=%v err=%v", ok, err)
	}
	f.Feed(whole[2:])
	payload, ok, err := f.Next()
	if err != nil || !ok {
		t.Fatalf("expected a complete frame, ok=%v err=%v", ok, err)
	}
	if string(payload) != "hello" {
		t.Errorf("payload = %q", payload)
	}
}

func TestCompressorRoundTripBelowThreshold(t *testing.T) {
	c := &Compressor{Threshold: 256}
	packed, err := c.Pack([]byte("tiny"))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := c.Unpack(packed)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if string(got) != "tiny" {
		t.Errorf("got %q", got)
	}
}

func TestCompressorRoundTripAboveThreshold(t *testing.T) {
	c := &Compressor{Threshold: 4}
	payload := bytes.Repeat([]byte("x"), 1000)
	packed, err := c.Pack(payload)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(packed) >= len(payload) {
		t.Errorf("expected compression to shrink repetitive payload: %d >= %d", len(packed), len(payload))
	}
	got, err := c.Unpack(packed)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch, len got=%d want=%d", len(got), len(payload))
	}
}

func TestCipherEncryptDecryptRoundTrip(t *testing.T) {
	secret := bytes.Repeat([]byte{0x42}, 16)
	enc, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	dec, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	plain := []byte("the quick brown fox jumps over the lazy dog, 1234567890")
	cipherText := make([]byte, len(plain))
	enc.Encrypt(cipherText, plain)
	if bytes.Equal(cipherText, plain) {
		t.Fatalf("ciphertext equals plaintext")
	}
	roundTrip := make([]byte, len(plain))
	dec.Decrypt(roundTrip, cipherText)
	if !bytes.Equal(roundTrip, plain) {
		t.Fatalf("round trip mismatch: got %q", roundTrip)
	}
}

func TestSplitterHandlesConcatenatedFrames(t *testing.T) {
	frames := [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")}
	var wire bytes.Buffer
	for _, fr := range frames {
		if err := WriteFrame(&wire, fr); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}

	f := NewFramer()
	f.Feed(wire.Bytes())
	for i, want := range frames {
		got, ok, err := f.Next()
		if err != nil || !ok {
			t.Fatalf("frame %d: ok=%v err=%v", i, ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d = %q, want %q", i, got, want)
		}
	}
	if _, ok, _ := f.Next(); ok {
		t.Fatalf("expected no further frames")
	}
}

// Any byte-level partition of the same stream must produce the same frames.
func TestSplitterPartitionInvariance(t *testing.T) {
	frames := [][]byte{bytes.Repeat([]byte{0xab}, 300), []byte{1}, []byte{2, 3}}
	var wire bytes.Buffer
	for _, fr := range frames {
		if err := WriteFrame(&wire, fr); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
	whole := wire.Bytes()

	for _, step := range []int{1, 2, 3, 7, len(whole)} {
		f := NewFramer()
		var got [][]byte
		for off := 0; off < len(whole); off += step {
			end := off + step
			if end > len(whole) {
				end = len(whole)
			}
			f.Feed(whole[off:end])
			for {
				p, ok, err := f.Next()
				if err != nil {
					t.Fatalf("step %d: %v", step, err)
				}
				if !ok {
					break
				}
				got = append(got, p)
			}
		}
		if len(got) != len(frames) {
			t.Fatalf("step %d: got %d frames, want %d", step, len(got), len(frames))
		}
		for i := range frames {
			if !bytes.Equal(got[i], frames[i]) {
				t.Errorf("step %d frame %d mismatch", step, i)
			}
		}
	}
}

// The whole outbound pipeline (compress, frame, encrypt) reversed by the
// inbound one (decrypt, split, decompress) must reproduce the original
// packets in order, mixing below- and above-threshold payloads.
func TestFullPipelineRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef")
	packets := [][]byte{{0, 1, 2}, {16, 17}, bytes.Repeat([]byte{0xab}, 300)}

	enc, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	comp := &Compressor{Threshold: 256}

	var wire bytes.Buffer
	for _, p := range packets {
		packed, err := comp.Pack(p)
		if err != nil {
			t.Fatalf("pack: %v", err)
		}
		var framed bytes.Buffer
		if err := WriteFrame(&framed, packed); err != nil {
			t.Fatalf("frame: %v", err)
		}
		cipherText := make([]byte, framed.Len())
		enc.Encrypt(cipherText, framed.Bytes())
		wire.Write(cipherText)
	}

	dec, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	plain := make([]byte, wire.Len())
	dec.Decrypt(plain, wire.Bytes())

	f := NewFramer()
	f.Feed(plain)
	for i, want := range packets {
		payload, ok, err := f.Next()
		if err != nil || !ok {
			t.Fatalf("packet %d: ok=%v err=%v", i, ok, err)
		}
		got, err := comp.Unpack(payload)
		if err != nil {
			t.Fatalf("unpack %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("packet %d: got % x, want % x", i, got, want)
		}
	}
}
