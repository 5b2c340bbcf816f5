package types

import "io"

// BitflagsDef layers named boolean flags over the bits of an inner integer
// type, Flags[i] naming bit (Shift+i).
type BitflagsDef struct {
	Inner Def
	Flags []string
	Shift int
}

func (d *BitflagsDef) Build(reg *Registry) *Type {
	inner := d.Inner.Build(reg)
	flags := d.Flags
	shift := d.Shift
	innerName := inner.Name

	read := func(r io.Reader, ctx *Context) (any, error) {
		raw, err := inner.Read(r, ctx)
		if err != nil {
			return nil, err
		}
		iv := toUint64(raw)
		result := make(map[string]any, len(flags))
		for i, name := range flags {
			result[name] = (iv>>uint(shift+i))&1 == 1
		}
		return result, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		value, _ := v.(map[string]any)
		var iv uint64
		for i, name := range flags {
			if b, _ := value[name].(bool); b {
				iv |= 1 << uint(shift+i)
			}
		}
		return inner.Write(w, boxForType(innerName, iv), ctx)
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		return inner.SizeOf(boxForType(innerName, 0), ctx)
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// boxForType reinterprets a raw bit pattern as the Go value the named
// primitive's Write expects.
func boxForType(name string, iv uint64) any {
	switch name {
	case "i8":
		return int8(iv)
	case "u8":
		return uint8(iv)
	case "i16":
		return int16(iv)
	case "u16":
		return uint16(iv)
	case "u32":
		return uint32(iv)
	case "i64", "varlong":
		return int64(iv)
	case "u64":
		return uint64(iv)
	default: // "i32", "varint"
		return int32(iv)
	}
}
