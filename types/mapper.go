package types

import "io"

// MapperDef layers a bijective integer<->string mapping over an inner
// integer type. Values absent from Mappings round-trip as
// the raw integer instead of failing, matching how unmapped IDs (e.g. a
// yet-unregistered particle or entity type) behave in the wild.
type MapperDef struct {
	Inner    Def
	Mappings map[int64]string
}

func (d *MapperDef) Build(reg *Registry) *Type {
	inner := d.Inner.Build(reg)
	mappings := d.Mappings
	reverse := make(map[string]int64, len(mappings))
	for k, v := range mappings {
		reverse[v] = k
	}

	read := func(r io.Reader, ctx *Context) (any, error) {
		raw, err := inner.Read(r, ctx)
		if err != nil {
			return nil, err
		}
		key := toInt64(raw)
		if name, ok := mappings[key]; ok {
			return name, nil
		}
		return raw, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		if s, ok := v.(string); ok {
			if key, ok := reverse[s]; ok {
				return inner.Write(w, boxForType(inner.Name, uint64(key)), ctx)
			}
		}
		return inner.Write(w, v, ctx)
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		if s, ok := v.(string); ok {
			if key, ok := reverse[s]; ok {
				return inner.SizeOf(boxForType(inner.Name, uint64(key)), ctx)
			}
		}
		return inner.SizeOf(v, ctx)
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}
