package types

import "io"

// OptionDef is a presence-byte-prefixed optional value: 0x00 means absent
// (value decodes to nil), 0x01 means Inner follows.
type OptionDef struct {
	Inner Def
}

func (d *OptionDef) Build(reg *Registry) *Type {
	inner := d.Inner.Build(reg)

	read := func(r io.Reader, ctx *Context) (any, error) {
		b, err := readFull(r, 1)
		if err != nil {
			return nil, err
		}
		if b[0] == 0 {
			return nil, nil
		}
		return inner.Read(r, ctx)
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		if v == nil {
			_, err := w.Write([]byte{0})
			return err
		}
		if _, err := w.Write([]byte{1}); err != nil {
			return err
		}
		return inner.Write(w, v, ctx)
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		if v == nil {
			return 1, nil
		}
		n, err := inner.SizeOf(v, ctx)
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}
