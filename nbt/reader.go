package nbt

import (
	"fmt"
	"io"
)

// countingReader tracks the number of bytes consumed through it so ReadTag
// can report bytes-consumed without requiring the caller to diff a
// bytes.Reader's position themselves.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	var b [1]byte
	n, err := io.ReadFull(c.r, b[:])
	c.n += n
	return b[0], err
}

// Reader decodes NBT tags from an underlying byte stream in a chosen
// dialect.
type Reader struct {
	cr      *countingReader
	dialect Dialect
}

// NewReader returns a Reader decoding dialect d from r.
func NewReader(r io.Reader, d Dialect) *Reader {
	return &Reader{cr: &countingReader{r: r}, dialect: d}
}

// NewReaderFrom returns a Reader decoding the big-endian dialect from r,
// the form used by Java Edition's on-disk and most packet NBT.
func NewReaderFrom(r io.Reader) *Reader {
	return NewReader(r, Big)
}

// ReadTag reads one root tag. If anonymous is true, the root's name is
// omitted from the wire form (the "network NBT" form used inside certain
// Java packets since protocol 764) — only the tag-id and payload are read,
// and a tag-id of TagEnd signals an empty/absent value. It returns the
// decoded tag (nil if empty), the number of bytes consumed, and any error.
func (r *Reader) ReadTag(anonymous bool) (Tag, int, error) {
	start := r.cr.n
	idByte, err := r.cr.ReadByte()
	if err != nil {
		return nil, r.cr.n - start, err
	}
	id := TagType(idByte)
	if id == TagEnd {
		return nil, r.cr.n - start, nil
	}
	if !anonymous {
		if _, err := r.dialect.ReadString(r.cr); err != nil {
			return nil, r.cr.n - start, fmt.Errorf("nbt: read root name: %w", err)
		}
	}
	tag, err := r.readPayload(id)
	return tag, r.cr.n - start, err
}

// ReadNamedTag reads one root tag together with its name (always present in
// the non-anonymous form).
func (r *Reader) ReadNamedTag() (string, Tag, int, error) {
	start := r.cr.n
	idByte, err := r.cr.ReadByte()
	if err != nil {
		return "", nil, r.cr.n - start, err
	}
	id := TagType(idByte)
	if id == TagEnd {
		return "", nil, r.cr.n - start, nil
	}
	name, err := r.dialect.ReadString(r.cr)
	if err != nil {
		return "", nil, r.cr.n - start, fmt.Errorf("nbt: read root name: %w", err)
	}
	tag, err := r.readPayload(id)
	return name, tag, r.cr.n - start, err
}

func (r *Reader) readPayload(id TagType) (Tag, error) {
	switch id {
	case TagByte:
		b, err := r.cr.ReadByte()
		return Byte(int8(b)), err
	case TagShort:
		v, err := r.dialect.ReadInt16(r.cr)
		return Short(v), err
	case TagInt:
		v, err := r.dialect.ReadInt32(r.cr)
		return Int(v), err
	case TagLong:
		v, err := r.dialect.ReadInt64(r.cr)
		return Long(v), err
	case TagFloat:
		v, err := r.dialect.ReadFloat32(r.cr)
		return Float(v), err
	case TagDouble:
		v, err := r.dialect.ReadFloat64(r.cr)
		return Double(v), err
	case TagString:
		v, err := r.dialect.ReadString(r.cr)
		return String(v), err
	case TagByteArray:
		n, err := r.dialect.ReadArrayCount(r.cr)
		if err != nil {
			return nil, err
		}
		out := make(ByteArray, n)
		for i := range out {
			b, err := r.cr.ReadByte()
			if err != nil {
				return nil, err
			}
			out[i] = int8(b)
		}
		return out, nil
	case TagIntArray:
		n, err := r.dialect.ReadArrayCount(r.cr)
		if err != nil {
			return nil, err
		}
		out := make(IntArray, n)
		for i := range out {
			v, err := r.dialect.ReadInt32(r.cr)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case TagLongArray:
		n, err := r.dialect.ReadArrayCount(r.cr)
		if err != nil {
			return nil, err
		}
		out := make(LongArray, n)
		for i := range out {
			v, err := r.dialect.ReadInt64(r.cr)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case TagList:
		elemIDByte, err := r.cr.ReadByte()
		if err != nil {
			return nil, err
		}
		elemID := TagType(elemIDByte)
		count, err := r.dialect.ReadArrayCount(r.cr)
		if err != nil {
			return nil, err
		}
		items := make([]Tag, 0, max0(count))
		for i := int32(0); i < count; i++ {
			item, err := r.readPayload(elemID)
			if err != nil {
				return nil, fmt.Errorf("nbt: list item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return List{ElemType: elemID, Items: items}, nil
	case TagCompound:
		c := NewCompound()
		for {
			idByte, err := r.cr.ReadByte()
			if err != nil {
				return nil, err
			}
			childID := TagType(idByte)
			if childID == TagEnd {
				break
			}
			name, err := r.dialect.ReadString(r.cr)
			if err != nil {
				return nil, fmt.Errorf("nbt: compound entry name: %w", err)
			}
			val, err := r.readPayload(childID)
			if err != nil {
				return nil, fmt.Errorf("nbt: compound entry %q: %w", name, err)
			}
			c.Set(name, val)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("nbt: unknown tag id %d", byte(id))
	}
}

func max0(n int32) int32 {
	if n < 0 {
		return 0
	}
	return n
}
