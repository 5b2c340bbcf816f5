package types

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/go-mclib/protocol/varint"
)

type byteReader struct{ io.Reader }

func (b byteReader) ReadByte() (byte, error) {
	buf, err := readFull(b.Reader, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func registerPrimitives(reg *Registry) {
	reg.registerPrimitive("void", &Type{
		Read:   func(r io.Reader, ctx *Context) (any, error) { return nil, nil },
		Write:  func(w io.Writer, v any, ctx *Context) error { return nil },
		SizeOf: func(v any, ctx *Context) (int, error) { return 0, nil },
	})

	reg.registerPrimitive("bool", &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			b, err := readFull(r, 1)
			if err != nil {
				return nil, err
			}
			return b[0] != 0, nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			b := byte(0)
			if v.(bool) {
				b = 1
			}
			_, err := w.Write([]byte{b})
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return 1, nil },
	})

	registerFixedInt[int8](reg, "i8", 1, func(b []byte) int8 { return int8(b[0]) }, func(v int8) []byte { return []byte{byte(v)} })
	registerFixedInt[uint8](reg, "u8", 1, func(b []byte) uint8 { return b[0] }, func(v uint8) []byte { return []byte{v} })
	registerFixedInt[int16](reg, "i16", 2, func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) }, func(v int16) []byte {
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(v))
		return buf
	})
	registerFixedInt[uint16](reg, "u16", 2, func(b []byte) uint16 { return binary.BigEndian.Uint16(b) }, func(v uint16) []byte {
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, v)
		return buf
	})
	registerFixedInt[int32](reg, "i32", 4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }, func(v int32) []byte {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(v))
		return buf
	})
	registerFixedInt[uint32](reg, "u32", 4, func(b []byte) uint32 { return binary.BigEndian.Uint32(b) }, func(v uint32) []byte {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, v)
		return buf
	})
	registerFixedInt[int64](reg, "i64", 8, func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }, func(v int64) []byte {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(v))
		return buf
	})
	registerFixedInt[uint64](reg, "u64", 8, func(b []byte) uint64 { return binary.BigEndian.Uint64(b) }, func(v uint64) []byte {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, v)
		return buf
	})

	reg.registerPrimitive("f32", &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			b, err := readFull(r, 4)
			if err != nil {
				return nil, err
			}
			return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			buf := make([]byte, 4)
			binary.BigEndian.PutUint32(buf, math.Float32bits(v.(float32)))
			_, err := w.Write(buf)
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return 4, nil },
	})
	reg.registerPrimitive("f64", &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			b, err := readFull(r, 8)
			if err != nil {
				return nil, err
			}
			return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, math.Float64bits(v.(float64)))
			_, err := w.Write(buf)
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return 8, nil },
	})

	reg.registerPrimitive("varint", &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			v, _, err := varint.ReadVarInt(byteReader{r})
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			_, err := w.Write(varint.AppendVarInt(nil, toInt32(v)))
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return varint.SizeOfVarInt(toInt32(v)), nil },
	})
	reg.registerPrimitive("varlong", &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			v, _, err := varint.ReadVarLong(byteReader{r})
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			_, err := w.Write(varint.AppendVarLong(nil, toInt64(v)))
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return varint.SizeOfVarLong(toInt64(v)), nil },
	})
}

func registerFixedInt[T any](reg *Registry, name string, size int, decode func([]byte) T, encode func(T) []byte) {
	reg.registerPrimitive(name, &Type{
		Read: func(r io.Reader, ctx *Context) (any, error) {
			b, err := readFull(r, size)
			if err != nil {
				return nil, err
			}
			return decode(b), nil
		},
		Write: func(w io.Writer, v any, ctx *Context) error {
			_, err := w.Write(encode(v.(T)))
			return err
		},
		SizeOf: func(v any, ctx *Context) (int, error) { return size, nil },
	})
}

// toInt32/toInt64 accept either the canonical int32/int64 or a plain int,
// matching how schema authors tend to write literal field values.
func toInt32(v any) int32 {
	switch x := v.(type) {
	case int32:
		return x
	case int:
		return int32(x)
	}
	return 0
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	}
	return 0
}
