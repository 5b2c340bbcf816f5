package types

import (
	"bytes"
	"io"
)

// EntityMetadataLoopDef reads Entry values until a sentinel byte (0xff in
// the vanilla schema) is seen in place of the next entry's leading index
// byte. The sentinel is consumed and not part of the returned slice.
type EntityMetadataLoopDef struct {
	Entry    Def
	Sentinel byte
}

func (d *EntityMetadataLoopDef) Build(reg *Registry) *Type {
	entry := d.Entry.Build(reg)
	sentinel := d.Sentinel

	read := func(r io.Reader, ctx *Context) (any, error) {
		var items []any
		for {
			first, err := readFull(r, 1)
			if err != nil {
				return nil, err
			}
			if first[0] == sentinel {
				break
			}
			// The byte just consumed is the entry's own leading byte; splice
			// it back in front of the stream for the entry decoder.
			entryReader := io.MultiReader(bytes.NewReader(first), r)
			item, err := entry.Read(entryReader, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		items, _ := v.([]any)
		for _, item := range items {
			if err := entry.Write(w, item, ctx); err != nil {
				return err
			}
		}
		_, err := w.Write([]byte{sentinel})
		return err
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		items, _ := v.([]any)
		total := 1
		for _, item := range items {
			n, err := entry.SizeOf(item, ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// TopBitSetTerminatedArrayDef reads Entry values where the top bit of each
// entry's leading byte signals "another entry follows"; the bit is stripped
// before the entry is decoded and restored (set on all but the last entry)
// on encode (used by entity metadata
// protocol IDs and similar compact varint-prefixed loops).
type TopBitSetTerminatedArrayDef struct {
	Entry Def
}

func (d *TopBitSetTerminatedArrayDef) Build(reg *Registry) *Type {
	entry := d.Entry.Build(reg)

	read := func(r io.Reader, ctx *Context) (any, error) {
		var items []any
		for {
			first, err := readFull(r, 1)
			if err != nil {
				return nil, err
			}
			topSet := first[0]&0x80 != 0
			stripped := first[0] &^ 0x80
			entryReader := io.MultiReader(bytes.NewReader([]byte{stripped}), r)
			item, err := entry.Read(entryReader, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if !topSet {
				break
			}
		}
		return items, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		items, _ := v.([]any)
		for i, item := range items {
			var buf bytes.Buffer
			if err := entry.Write(&buf, item, ctx); err != nil {
				return err
			}
			b := buf.Bytes()
			if len(b) == 0 {
				return ErrSchemaMismatch
			}
			if i != len(items)-1 {
				b[0] |= 0x80
			} else {
				b[0] &^= 0x80
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
		}
		return nil
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		items, _ := v.([]any)
		total := 0
		for _, item := range items {
			n, err := entry.SizeOf(item, ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}
