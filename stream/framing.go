// Package stream implements the wire-level packet pipeline shared by every
// connection state: VarInt-length framing, threshold-gated zlib
// compression, and AES-128-CFB8 encryption, layered the way the Java
// Edition protocol layers them — encryption outermost, then framing, then
// compression innermost.
package stream

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-mclib/protocol/varint"
)

// ErrFrameTooLarge guards against a corrupt or malicious length prefix
// forcing an unbounded allocation.
var ErrFrameTooLarge = errors.New("stream: frame exceeds maximum packet length")

// MaxFrameLength is the largest frame length prefix Next accepts (2 MiB),
// so a bad length prefix fails fast instead of exhausting memory. The
// decompressed length read by Compressor.Unpack is not checked against it.
const MaxFrameLength = 2 * 1024 * 1024

// Framer splits and reassembles the VarInt-length-prefixed frames the Java
// Edition protocol wraps every packet in. It buffers partial frames across
// calls to Feed, matching how bytes arrive off the wire in arbitrary chunks.
type Framer struct {
	buf bytes.Buffer
}

// NewFramer returns a Framer with an empty read buffer.
func NewFramer() *Framer { return &Framer{} }

// Feed appends newly-read bytes to the framer's internal buffer.
func (f *Framer) Feed(b []byte) { f.buf.Write(b) }

// Next extracts one complete frame's payload (the bytes after the length
// VarInt) if a full frame is buffered. ok is false if more data is needed;
// err is non-nil only for a malformed length prefix.
func (f *Framer) Next() (payload []byte, ok bool, err error) {
	data := f.buf.Bytes()
	n, consumed, readErr := tryReadVarInt(data)
	if readErr != nil {
		if errors.Is(readErr, errShortVarInt) {
			return nil, false, nil
		}
		return nil, false, readErr
	}
	if n < 0 || n > MaxFrameLength {
		return nil, false, ErrFrameTooLarge
	}
	total := consumed + int(n)
	if len(data) < total {
		return nil, false, nil
	}
	payload = make([]byte, n)
	copy(payload, data[consumed:total])
	f.buf.Next(total)
	return payload, true, nil
}

// Reset discards any partially-buffered frame, used on a state transition
// where the two sides agree to resynchronize (login -> configuration).
func (f *Framer) Reset() { f.buf.Reset() }

var errShortVarInt = errors.New("stream: incomplete varint")

// tryReadVarInt reads a VarInt from the front of data without consuming
// from an io.Reader, so Framer.Next can be a pure non-blocking check.
func tryReadVarInt(data []byte) (value int32, consumed int, err error) {
	var result int32
	for i := 0; i < varint.MaxVarIntLen; i++ {
		if i >= len(data) {
			return 0, 0, errShortVarInt
		}
		b := data[i]
		result |= int32(b&0x7f) << uint(7*i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, varint.ErrOverflow
}

// WriteFrame writes a length-prefixed frame for payload to w, the inverse
// of Next.
func WriteFrame(w io.Writer, payload []byte) error {
	if err := varint.WriteVarInt(asByteWriter{w}, int32(len(payload))); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

type asByteWriter struct{ io.Writer }

func (a asByteWriter) WriteByte(b byte) error {
	_, err := a.Write([]byte{b})
	return err
}
