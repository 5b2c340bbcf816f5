package nbt

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/go-mclib/protocol/varint"
)

// Dialect captures the per-edition wire encoding of the scalar fields that
// compose every tag: the width/byte-order of fixed-size numbers, how string
// lengths are framed, and how array element counts are framed.
type Dialect interface {
	Name() string

	ReadInt16(r io.Reader) (int16, error)
	WriteInt16(w io.Writer, v int16) error
	ReadInt32(r io.Reader) (int32, error)
	WriteInt32(w io.Writer, v int32) error
	ReadInt64(r io.Reader) (int64, error)
	WriteInt64(w io.Writer, v int64) error
	ReadFloat32(r io.Reader) (float32, error)
	WriteFloat32(w io.Writer, v float32) error
	ReadFloat64(r io.Reader) (float64, error)
	WriteFloat64(w io.Writer, v float64) error

	ReadString(r io.Reader) (string, error)
	WriteString(w io.Writer, v string) error

	ReadArrayCount(r io.Reader) (int32, error)
	WriteArrayCount(w io.Writer, v int32) error
}

// Big is the big-endian fixed-width dialect: Java Edition storage (Anvil)
// NBT and standard (pre-1.20.2) Java packet NBT.
var Big Dialect = bigDialect{}

// Little is the little-endian fixed-width dialect, reserved for
// Bedrock-style disk NBT.
var Little Dialect = littleDialect{}

// LittleVarint is little-endian with zigzag-varint integers and varint
// string/array lengths, reserved for Bedrock-style network NBT.
var LittleVarint Dialect = littleVarintDialect{}

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	return buf, err
}

// --- big ---

type bigDialect struct{}

func (bigDialect) Name() string { return "big" }

func (bigDialect) ReadInt16(r io.Reader) (int16, error) {
	b, err := readFull(r, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}
func (bigDialect) WriteInt16(w io.Writer, v int16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}
func (bigDialect) ReadInt32(r io.Reader) (int32, error) {
	b, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}
func (bigDialect) WriteInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}

// ReadInt64 reads a (high32, low32) big-endian pair and recomposes it into
// a native int64.
func (bigDialect) ReadInt64(r io.Reader) (int64, error) {
	hi, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	lo, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint32(hi))<<32 | int64(binary.BigEndian.Uint32(lo)), nil
}
func (bigDialect) WriteInt64(w io.Writer, v int64) error {
	var b [8]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(uint64(v)>>32))
	binary.BigEndian.PutUint32(b[4:8], uint32(uint64(v)))
	_, err := w.Write(b[:])
	return err
}
func (d bigDialect) ReadFloat32(r io.Reader) (float32, error) {
	v, err := d.ReadInt32(r)
	return math.Float32frombits(uint32(v)), err
}
func (d bigDialect) WriteFloat32(w io.Writer, v float32) error {
	return d.WriteInt32(w, int32(math.Float32bits(v)))
}
func (d bigDialect) ReadFloat64(r io.Reader) (float64, error) {
	v, err := d.ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}
func (d bigDialect) WriteFloat64(w io.Writer, v float64) error {
	return d.WriteInt64(w, int64(math.Float64bits(v)))
}
func (d bigDialect) ReadString(r io.Reader) (string, error) {
	n, err := d.ReadInt16(r)
	if err != nil {
		return "", err
	}
	b, err := readFull(r, int(uint16(n)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
func (d bigDialect) WriteString(w io.Writer, v string) error {
	if err := d.WriteInt16(w, int16(uint16(len(v)))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}
func (d bigDialect) ReadArrayCount(r io.Reader) (int32, error) { return d.ReadInt32(r) }
func (d bigDialect) WriteArrayCount(w io.Writer, v int32) error { return d.WriteInt32(w, v) }

// --- little (fixed width, little-endian) ---

type littleDialect struct{}

func (littleDialect) Name() string { return "little" }

func (littleDialect) ReadInt16(r io.Reader) (int16, error) {
	b, err := readFull(r, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}
func (littleDialect) WriteInt16(w io.Writer, v int16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}
func (littleDialect) ReadInt32(r io.Reader) (int32, error) {
	b, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}
func (littleDialect) WriteInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}
func (littleDialect) ReadInt64(r io.Reader) (int64, error) {
	lo, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	hi, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint32(hi))<<32 | int64(binary.LittleEndian.Uint32(lo)), nil
}
func (littleDialect) WriteInt64(w io.Writer, v int64) error {
	var b [8]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(uint64(v)))
	binary.LittleEndian.PutUint32(b[4:8], uint32(uint64(v)>>32))
	_, err := w.Write(b[:])
	return err
}
func (d littleDialect) ReadFloat32(r io.Reader) (float32, error) {
	v, err := d.ReadInt32(r)
	return math.Float32frombits(uint32(v)), err
}
func (d littleDialect) WriteFloat32(w io.Writer, v float32) error {
	return d.WriteInt32(w, int32(math.Float32bits(v)))
}
func (d littleDialect) ReadFloat64(r io.Reader) (float64, error) {
	v, err := d.ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}
func (d littleDialect) WriteFloat64(w io.Writer, v float64) error {
	return d.WriteInt64(w, int64(math.Float64bits(v)))
}
func (d littleDialect) ReadString(r io.Reader) (string, error) {
	n, err := d.ReadInt16(r)
	if err != nil {
		return "", err
	}
	b, err := readFull(r, int(uint16(n)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
func (d littleDialect) WriteString(w io.Writer, v string) error {
	if err := d.WriteInt16(w, int16(uint16(len(v)))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}
func (d littleDialect) ReadArrayCount(r io.Reader) (int32, error)  { return d.ReadInt32(r) }
func (d littleDialect) WriteArrayCount(w io.Writer, v int32) error { return d.WriteInt32(w, v) }

// --- littleVarint (little-endian fixed floats/shorts, zigzag-varint ints) ---

type littleVarintDialect struct{ littleDialect }

func (littleVarintDialect) Name() string { return "littleVarint" }

func zigzagEncode32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func zigzagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }
func zigzagEncode64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func zigzagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }

type byteReader struct{ io.Reader }

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.Reader, buf[:])
	return buf[0], err
}

func (littleVarintDialect) ReadInt32(r io.Reader) (int32, error) {
	v, _, err := varint.ReadVarLong(byteReader{r})
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(uint32(v)), nil
}
func (littleVarintDialect) WriteInt32(w io.Writer, v int32) error {
	return writeVarintBytes(w, varint.AppendVarLong(nil, int64(zigzagEncode32(v))))
}
func (littleVarintDialect) ReadInt64(r io.Reader) (int64, error) {
	v, _, err := varint.ReadVarLong(byteReader{r})
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(uint64(v)), nil
}
func (littleVarintDialect) WriteInt64(w io.Writer, v int64) error {
	return writeVarintBytes(w, varint.AppendVarLong(nil, int64(zigzagEncode64(v))))
}

func (d littleVarintDialect) ReadString(r io.Reader) (string, error) {
	n, _, err := varint.ReadVarInt(byteReader{r})
	if err != nil {
		return "", err
	}
	b, err := readFull(r, int(uint32(n)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
func (d littleVarintDialect) WriteString(w io.Writer, v string) error {
	if err := writeVarintBytes(w, varint.AppendVarInt(nil, int32(len(v)))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}
func (d littleVarintDialect) ReadArrayCount(r io.Reader) (int32, error) {
	v, _, err := varint.ReadVarInt(byteReader{r})
	return v, err
}
func (d littleVarintDialect) WriteArrayCount(w io.Writer, v int32) error {
	return writeVarintBytes(w, varint.AppendVarInt(nil, v))
}

func writeVarintBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
