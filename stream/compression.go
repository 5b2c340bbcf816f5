package stream

import (
	"bytes"
	"io"

	"github.com/go-mclib/protocol/varint"
	"github.com/klauspost/compress/zlib"
)

// Compressor applies the threshold-gated zlib compression layer:
// packets at or above Threshold bytes (uncompressed) are zlib-deflated and
// prefixed with their uncompressed length; smaller packets are sent with a
// zero-length prefix to signal "not compressed". A negative Threshold
// disables compression entirely (used before Set Compression arrives).
type Compressor struct {
	Threshold int
}

// NewCompressor returns a Compressor with compression disabled.
func NewCompressor() *Compressor { return &Compressor{Threshold: -1} }

// Enabled reports whether compression is currently active.
func (c *Compressor) Enabled() bool { return c.Threshold >= 0 }

// Pack prepends the data-length framing this layer owns (VarInt
// uncompressed length, possibly zero) and deflates payload if it meets the
// threshold, returning the bytes to hand to the length-prefixed Framer.
func (c *Compressor) Pack(payload []byte) ([]byte, error) {
	if !c.Enabled() {
		return payload, nil
	}
	var out bytes.Buffer
	if len(payload) < c.Threshold {
		if err := varint.WriteVarInt(asByteWriter{&out}, 0); err != nil {
			return nil, err
		}
		out.Write(payload)
		return out.Bytes(), nil
	}
	if err := varint.WriteVarInt(asByteWriter{&out}, int32(len(payload))); err != nil {
		return nil, err
	}
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Unpack reverses Pack: frame is the bytes already extracted by the Framer
// for one packet.
func (c *Compressor) Unpack(frame []byte) ([]byte, error) {
	if !c.Enabled() {
		return frame, nil
	}
	r := bytes.NewReader(frame)
	uncompressedLen, _, err := varint.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	rest := frame[len(frame)-r.Len():]
	if uncompressedLen == 0 {
		return rest, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}
