package types

import "io"

// ArrayDef is a homogeneous sequence of Elem, either length-prefixed by a
// CountType (typically varint) or fixed at Count elements.
type ArrayDef struct {
	CountType Def
	Count     int
	Elem      Def
}

func (d *ArrayDef) Build(reg *Registry) *Type {
	elem := d.Elem.Build(reg)
	var countType *Type
	if d.CountType != nil {
		countType = d.CountType.Build(reg)
	}
	fixed := d.Count

	read := func(r io.Reader, ctx *Context) (any, error) {
		n := fixed
		if countType != nil {
			c, err := countType.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			n = int(toInt64(c))
		}
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			item, err := elem.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		items, _ := v.([]any)
		if countType != nil {
			if err := countType.Write(w, int32(len(items)), ctx); err != nil {
				return err
			}
		}
		for _, item := range items {
			if err := elem.Write(w, item, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		items, _ := v.([]any)
		total := 0
		if countType != nil {
			n, err := countType.SizeOf(int32(len(items)), ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		for _, item := range items {
			n, err := elem.SizeOf(item, ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// BufferDef is a raw byte blob, either length-prefixed by CountType or a
// fixed Count bytes.
type BufferDef struct {
	CountType Def
	Count     int
}

func (d *BufferDef) Build(reg *Registry) *Type {
	var countType *Type
	if d.CountType != nil {
		countType = d.CountType.Build(reg)
	}
	fixed := d.Count

	read := func(r io.Reader, ctx *Context) (any, error) {
		n := fixed
		if countType != nil {
			c, err := countType.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			n = int(toInt64(c))
		}
		return readFull(r, n)
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		b, _ := v.([]byte)
		if countType != nil {
			if err := countType.Write(w, int32(len(b)), ctx); err != nil {
				return err
			}
		}
		_, err := w.Write(b)
		return err
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		b, _ := v.([]byte)
		total := len(b)
		if countType != nil {
			n, err := countType.SizeOf(int32(len(b)), ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// PStringDef is a length-prefixed UTF-8 string, CountType defaulting to
// varint when nil.
type PStringDef struct {
	CountType Def
}

func (d *PStringDef) Build(reg *Registry) *Type {
	countType := Ref("varint").Build(reg)
	if d.CountType != nil {
		countType = d.CountType.Build(reg)
	}

	read := func(r io.Reader, ctx *Context) (any, error) {
		c, err := countType.Read(r, ctx)
		if err != nil {
			return nil, err
		}
		b, err := readFull(r, int(toInt64(c)))
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		s, _ := v.(string)
		if err := countType.Write(w, int32(len(s)), ctx); err != nil {
			return err
		}
		_, err := w.Write([]byte(s))
		return err
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		s, _ := v.(string)
		n, err := countType.SizeOf(int32(len(s)), ctx)
		if err != nil {
			return 0, err
		}
		return n + len(s), nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}
