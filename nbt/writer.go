package nbt

import (
	"fmt"
	"io"
)

// Writer encodes NBT tags to an underlying byte stream in a chosen dialect.
type Writer struct {
	w       io.Writer
	dialect Dialect
}

// NewWriter returns a Writer encoding dialect d to w.
func NewWriter(w io.Writer, d Dialect) *Writer {
	return &Writer{w: w, dialect: d}
}

// NewWriterTo returns a Writer encoding the big-endian dialect to w.
func NewWriterTo(w io.Writer) *Writer {
	return NewWriter(w, Big)
}

// WriteTag writes a named root tag; WriteAnonymousTag writes the nameless
// "network NBT" form. If tag is nil, a lone TagEnd byte is written,
// signalling an empty NBT value.
func (w *Writer) WriteTag(name string, tag Tag) error {
	return w.writeTag(name, tag, false)
}

// WriteAnonymousTag writes a root tag omitting its name.
func (w *Writer) WriteAnonymousTag(tag Tag) error {
	return w.writeTag("", tag, true)
}

func (w *Writer) writeTag(name string, tag Tag, anonymous bool) error {
	if tag == nil {
		_, err := w.w.Write([]byte{byte(TagEnd)})
		return err
	}
	if _, err := w.w.Write([]byte{byte(tag.Type())}); err != nil {
		return err
	}
	if !anonymous {
		if err := w.dialect.WriteString(w.w, name); err != nil {
			return fmt.Errorf("nbt: write root name: %w", err)
		}
	}
	return w.writePayload(tag)
}

func (w *Writer) writePayload(tag Tag) error {
	switch t := tag.(type) {
	case Byte:
		_, err := w.w.Write([]byte{byte(t)})
		return err
	case Short:
		return w.dialect.WriteInt16(w.w, int16(t))
	case Int:
		return w.dialect.WriteInt32(w.w, int32(t))
	case Long:
		return w.dialect.WriteInt64(w.w, int64(t))
	case Float:
		return w.dialect.WriteFloat32(w.w, float32(t))
	case Double:
		return w.dialect.WriteFloat64(w.w, float64(t))
	case String:
		return w.dialect.WriteString(w.w, string(t))
	case ByteArray:
		if err := w.dialect.WriteArrayCount(w.w, int32(len(t))); err != nil {
			return err
		}
		for _, b := range t {
			if _, err := w.w.Write([]byte{byte(b)}); err != nil {
				return err
			}
		}
		return nil
	case IntArray:
		if err := w.dialect.WriteArrayCount(w.w, int32(len(t))); err != nil {
			return err
		}
		for _, v := range t {
			if err := w.dialect.WriteInt32(w.w, v); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := w.dialect.WriteArrayCount(w.w, int32(len(t))); err != nil {
			return err
		}
		for _, v := range t {
			if err := w.dialect.WriteInt64(w.w, v); err != nil {
				return err
			}
		}
		return nil
	case List:
		elemID := t.ElemType
		if len(t.Items) == 0 && elemID == 0 {
			elemID = TagEnd
		}
		if _, err := w.w.Write([]byte{byte(elemID)}); err != nil {
			return err
		}
		if err := w.dialect.WriteArrayCount(w.w, int32(len(t.Items))); err != nil {
			return err
		}
		for i, item := range t.Items {
			if err := w.writePayload(item); err != nil {
				return fmt.Errorf("nbt: list item %d: %w", i, err)
			}
		}
		return nil
	case Compound:
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			if _, err := w.w.Write([]byte{byte(val.Type())}); err != nil {
				return err
			}
			if err := w.dialect.WriteString(w.w, key); err != nil {
				return fmt.Errorf("nbt: compound entry name %q: %w", key, err)
			}
			if err := w.writePayload(val); err != nil {
				return fmt.Errorf("nbt: compound entry %q: %w", key, err)
			}
		}
		_, err := w.w.Write([]byte{byte(TagEnd)})
		return err
	default:
		return fmt.Errorf("nbt: unsupported tag type %T", tag)
	}
}
