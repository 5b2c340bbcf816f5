// Package netstruct provides the named wire-value types used by concrete
// packet struct definitions (ns.String, ns.VarInt, ns.UUID, ...), each
// implementing Encode/Decode against the Java Edition wire format directly,
// the way hand-written packet schemas in this ecosystem declare their
// fields: a struct of ns.* typed fields, encoded/decoded field-by-field in
// declaration order.
package netstruct

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"

	"github.com/go-mclib/protocol/varint"
)

// Encoder is implemented by every netstruct value type.
type Encoder interface {
	Encode(w io.Writer) error
}

// Decoder is implemented by every netstruct pointer value type, so that
// generic packet decoding can call Decode on a pointer to each field.
type Decoder interface {
	Decode(r io.Reader) error
}

type byteReader struct{ io.Reader }

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.Reader, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	return buf, err
}

// Boolean is a single-byte 0x00/0x01 flag.
type Boolean bool

func (v Boolean) Encode(w io.Writer) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

func (v *Boolean) Decode(r io.Reader) error {
	b, err := readFull(r, 1)
	if err != nil {
		return err
	}
	*v = b[0] != 0
	return nil
}

// Byte is a signed 8-bit integer.
type Byte int8

func (v Byte) Encode(w io.Writer) error { _, err := w.Write([]byte{byte(v)}); return err }
func (v *Byte) Decode(r io.Reader) error {
	b, err := readFull(r, 1)
	if err != nil {
		return err
	}
	*v = Byte(int8(b[0]))
	return nil
}

// UnsignedByte is an unsigned 8-bit integer.
type UnsignedByte uint8

func (v UnsignedByte) Encode(w io.Writer) error { _, err := w.Write([]byte{byte(v)}); return err }
func (v *UnsignedByte) Decode(r io.Reader) error {
	b, err := readFull(r, 1)
	if err != nil {
		return err
	}
	*v = UnsignedByte(b[0])
	return nil
}

// Short is a signed 16-bit big-endian integer.
type Short int16

func (v Short) Encode(w io.Writer) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}
func (v *Short) Decode(r io.Reader) error {
	b, err := readFull(r, 2)
	if err != nil {
		return err
	}
	*v = Short(int16(binary.BigEndian.Uint16(b)))
	return nil
}

// Uint16 is an unsigned 16-bit big-endian integer, used for e.g. ports.
type Uint16 uint16

func (v Uint16) Encode(w io.Writer) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}
func (v *Uint16) Decode(r io.Reader) error {
	b, err := readFull(r, 2)
	if err != nil {
		return err
	}
	*v = Uint16(binary.BigEndian.Uint16(b))
	return nil
}

// Int is a signed 32-bit big-endian integer.
type Int int32

func (v Int) Encode(w io.Writer) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}
func (v *Int) Decode(r io.Reader) error {
	b, err := readFull(r, 4)
	if err != nil {
		return err
	}
	*v = Int(int32(binary.BigEndian.Uint32(b)))
	return nil
}

// Long is a signed 64-bit big-endian integer.
type Long int64

func (v Long) Encode(w io.Writer) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return err
}
func (v *Long) Decode(r io.Reader) error {
	b, err := readFull(r, 8)
	if err != nil {
		return err
	}
	*v = Long(int64(binary.BigEndian.Uint64(b)))
	return nil
}

// Float32 is an IEEE-754 single-precision big-endian float.
type Float32 float32

func (v Float32) Encode(w io.Writer) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(v)))
	_, err := w.Write(b[:])
	return err
}
func (v *Float32) Decode(r io.Reader) error {
	b, err := readFull(r, 4)
	if err != nil {
		return err
	}
	*v = Float32(math.Float32frombits(binary.BigEndian.Uint32(b)))
	return nil
}

// Float64 is an IEEE-754 double-precision big-endian float.
type Float64 float64

func (v Float64) Encode(w io.Writer) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(v)))
	_, err := w.Write(b[:])
	return err
}
func (v *Float64) Decode(r io.Reader) error {
	b, err := readFull(r, 8)
	if err != nil {
		return err
	}
	*v = Float64(math.Float64frombits(binary.BigEndian.Uint64(b)))
	return nil
}

// VarInt is a LEB128-style variable-width signed 32-bit integer.
type VarInt int32

func (v VarInt) Encode(w io.Writer) error {
	_, err := w.Write(varint.AppendVarInt(nil, int32(v)))
	return err
}
func (v *VarInt) Decode(r io.Reader) error {
	n, _, err := varint.ReadVarInt(byteReader{r})
	if err != nil {
		return err
	}
	*v = VarInt(n)
	return nil
}

// VarLong is a LEB128-style variable-width signed 64-bit integer.
type VarLong int64

func (v VarLong) Encode(w io.Writer) error {
	_, err := w.Write(varint.AppendVarLong(nil, int64(v)))
	return err
}
func (v *VarLong) Decode(r io.Reader) error {
	n, _, err := varint.ReadVarLong(byteReader{r})
	if err != nil {
		return err
	}
	*v = VarLong(n)
	return nil
}

// String is a VarInt-length-prefixed UTF-8 string.
type String string

func (v String) Encode(w io.Writer) error {
	if err := VarInt(len(v)).Encode(w); err != nil {
		return err
	}
	_, err := w.Write([]byte(v))
	return err
}
func (v *String) Decode(r io.Reader) error {
	var n VarInt
	if err := n.Decode(r); err != nil {
		return err
	}
	b, err := readFull(r, int(n))
	if err != nil {
		return err
	}
	*v = String(b)
	return nil
}

// Identifier is a namespaced String such as "minecraft:brand".
type Identifier string

func (v Identifier) Encode(w io.Writer) error { return String(v).Encode(w) }
func (v *Identifier) Decode(r io.Reader) error {
	var s String
	if err := s.Decode(r); err != nil {
		return err
	}
	*v = Identifier(s)
	return nil
}

// ByteArray is a VarInt-length-prefixed raw byte blob.
type ByteArray []byte

func (v ByteArray) Encode(w io.Writer) error {
	if err := VarInt(len(v)).Encode(w); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}
func (v *ByteArray) Decode(r io.Reader) error {
	var n VarInt
	if err := n.Decode(r); err != nil {
		return err
	}
	b, err := readFull(r, int(n))
	if err != nil {
		return err
	}
	*v = b
	return nil
}

// RawRest is a raw byte blob with no length prefix of its own: its size is
// whatever remains in the enclosing packet frame. Used for fields like
// Serverbound/Clientbound Plugin Message's Data, documented as "inferred
// from the packet length" rather than self-delimited. Valid only as a
// packet's final field.
type RawRest []byte

func (v RawRest) Encode(w io.Writer) error {
	_, err := w.Write(v)
	return err
}

func (v *RawRest) Decode(r io.Reader) error {
	b, err := io.ReadAll(r)
	*v = b
	return err
}

// UUID is a 128-bit identifier, encoded as two big-endian 64-bit halves.
type UUID [16]byte

func (v UUID) Encode(w io.Writer) error { _, err := w.Write(v[:]); return err }
func (v *UUID) Decode(r io.Reader) error {
	b, err := readFull(r, 16)
	if err != nil {
		return err
	}
	copy(v[:], b)
	return nil
}

// String renders the canonical 8-4-4-4-12 hyphenated form.
func (v UUID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16])
}

// UUIDFromString parses the canonical 8-4-4-4-12 hyphenated form (or the
// bare 32 hex-digit form).
func UUIDFromString(s string) (UUID, error) {
	var out UUID
	stripped := make([]byte, 0, 32)
	for _, c := range s {
		if c == '-' {
			continue
		}
		stripped = append(stripped, byte(c))
	}
	if len(stripped) != 32 {
		return out, fmt.Errorf("netstruct: invalid UUID %q", s)
	}
	decoded, err := hex.DecodeString(string(stripped))
	if err != nil {
		return out, fmt.Errorf("netstruct: invalid UUID %q: %w", s, err)
	}
	copy(out[:], decoded)
	return out, nil
}

// PrefixedOptional is a Boolean presence flag followed by T if present.
type PrefixedOptional[T interface {
	Encoder
}] struct {
	Present bool
	Value   T
}

func (v PrefixedOptional[T]) Encode(w io.Writer) error {
	if err := Boolean(v.Present).Encode(w); err != nil {
		return err
	}
	if !v.Present {
		return nil
	}
	return v.Value.Encode(w)
}

func (v *PrefixedOptional[T]) Decode(r io.Reader) error {
	var present Boolean
	if err := present.Decode(r); err != nil {
		return err
	}
	v.Present = bool(present)
	if !v.Present {
		return nil
	}
	dec, ok := any(&v.Value).(Decoder)
	if !ok {
		return fmt.Errorf("netstruct: %T does not implement Decoder", v.Value)
	}
	return dec.Decode(r)
}

// FixedBitSet is a fixed-length bit vector, packed 8 bits per byte,
// round-trip length given explicitly rather than inferred from a prefix.
type FixedBitSet struct {
	Bits int
	Data []byte
}

func (v FixedBitSet) Encode(w io.Writer) error {
	_, err := w.Write(v.Data)
	return err
}

func (v *FixedBitSet) Decode(r io.Reader) error {
	n := (v.Bits + 7) / 8
	b, err := readFull(r, n)
	if err != nil {
		return err
	}
	v.Data = b
	return nil
}
